package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	qb "github.com/riskibarqy/team-growth/internal/platform/querybuilder"
)

var matchSelectColumns = []string{
	"id", "public_id", "team_public_id", "season_public_id", "opponent", "match_date",
	"team_score", "opponent_score", "created_at", "updated_at",
}

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, id string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	found, err := getOne(ctx, r.db, &row, query, args...)
	if err != nil {
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, false, nil
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID string) ([]match.Match, error) {
	query, args, err := qb.Select(matchSelectColumns...).From("matches").
		Where(qb.Eq("season_public_id", seasonID)).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := selectAll(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) CountBySeason(ctx context.Context, seasonID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("matches").
		Where(qb.Eq("season_public_id", seasonID)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches query: %w", err)
	}

	var count int
	if _, err := getOne(ctx, r.db, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}
	return count, nil
}

func (r *MatchRepository) Insert(ctx context.Context, item match.Match) error {
	query, args, err := qb.InsertModel("matches", matchInsertModel{
		PublicID:      item.ID,
		TeamID:        item.TeamID,
		SeasonID:      item.SeasonID,
		Opponent:      item.Opponent,
		MatchDate:     season.CalendarDate(item.MatchDate),
		TeamScore:     item.TeamScore,
		OpponentScore: item.OpponentScore,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	query, args, err := qb.Update("matches").
		Set("season_public_id", item.SeasonID).
		Set("opponent", item.Opponent).
		Set("match_date", season.CalendarDate(item.MatchDate)).
		Set("team_score", item.TeamScore).
		Set("opponent_score", item.OpponentScore).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update match: not found")
	}
	return nil
}

// Delete relies on ON DELETE CASCADE for lineups, assignments and stat
// records. Snapshots carry no foreign key to matches and survive.
func (r *MatchRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}
