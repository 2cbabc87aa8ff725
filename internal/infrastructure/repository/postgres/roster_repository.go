package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	qb "github.com/riskibarqy/team-growth/internal/platform/querybuilder"
)

var attributeSelectColumns = []string{
	"shooting", "passing", "dribbling", "defense", "physical", "coach_grade", "overall_rating",
}

var playerSelectColumns = append([]string{
	"id", "public_id", "team_public_id", "user_id", "name", "position", "jersey_number", "created_at", "updated_at",
}, attributeSelectColumns...)

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) GetByID(ctx context.Context, id string) (roster.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return roster.Player{}, false, fmt.Errorf("build get player query: %w", err)
	}

	var row playerTableModel
	found, err := getOne(ctx, r.db, &row, query, args...)
	if err != nil {
		return roster.Player{}, false, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return roster.Player{}, false, nil
	}
	return row.toDomain(), true, nil
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("jersey_number", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list players query: %w", err)
	}

	var rows []playerTableModel
	if err := selectAll(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]roster.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Upsert syncs roster fields from the team service. Ratings are owned by the
// stats pipeline and are left untouched on conflict.
func (r *RosterRepository) Upsert(ctx context.Context, p roster.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns("public_id", "team_public_id", "user_id", "name", "position", "jersey_number").
		Values(p.ID, p.TeamID, p.UserID, p.Name, string(p.Position), p.JerseyNumber).
		Suffix(`ON CONFLICT (public_id) DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    user_id = EXCLUDED.user_id,
    name = EXCLUDED.name,
    position = EXCLUDED.position,
    jersey_number = EXCLUDED.jersey_number,
    updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}
	return nil
}

func lockPlayerAttributes(ctx context.Context, tx *sqlx.Tx, playerID string) (growth.Attributes, bool, error) {
	query, args, err := qb.Select(attributeSelectColumns...).From("players").
		Where(qb.Eq("public_id", playerID)).
		ForUpdate().
		ToSQL()
	if err != nil {
		return growth.Attributes{}, false, fmt.Errorf("build lock player query: %w", err)
	}

	var row attributeColumns
	found, err := getOne(ctx, tx, &row, query, args...)
	if err != nil {
		return growth.Attributes{}, false, fmt.Errorf("lock player: %w", err)
	}
	return row.toDomain(), found, nil
}

func updatePlayerAttributes(ctx context.Context, tx *sqlx.Tx, playerID string, a growth.Attributes) error {
	query, args, err := qb.Update("players").
		Set("shooting", a.Shooting).
		Set("passing", a.Passing).
		Set("dribbling", a.Dribbling).
		Set("defense", a.Defense).
		Set("physical", a.Physical).
		Set("coach_grade", a.CoachGrade).
		Set("overall_rating", a.OverallRating).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update player attributes query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update player attributes: %w", err)
	}
	return nil
}
