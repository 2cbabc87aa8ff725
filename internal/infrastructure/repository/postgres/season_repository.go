package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	qb "github.com/riskibarqy/team-growth/internal/platform/querybuilder"
)

var seasonSelectColumns = []string{
	"id", "public_id", "team_public_id", "name", "start_date", "end_date", "is_active", "created_at", "updated_at",
}

type SeasonRepository struct {
	db *sqlx.DB
}

func NewSeasonRepository(db *sqlx.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

func (r *SeasonRepository) GetByID(ctx context.Context, id string) (season.Season, bool, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return season.Season{}, false, fmt.Errorf("build get season query: %w", err)
	}

	var row seasonTableModel
	found, err := getOne(ctx, r.db, &row, query, args...)
	if err != nil {
		return season.Season{}, false, fmt.Errorf("get season: %w", err)
	}
	if !found {
		return season.Season{}, false, nil
	}
	return row.toDomain(), true, nil
}

func (r *SeasonRepository) ListByTeam(ctx context.Context, teamID string) ([]season.Season, error) {
	query, args, err := qb.Select(seasonSelectColumns...).From("seasons").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("start_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list seasons query: %w", err)
	}

	var rows []seasonTableModel
	if err := selectAll(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}

	out := make([]season.Season, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *SeasonRepository) Insert(ctx context.Context, item season.Season) error {
	query, args, err := qb.InsertModel("seasons", seasonInsertModel{
		PublicID:  item.ID,
		TeamID:    item.TeamID,
		Name:      item.Name,
		StartDate: season.CalendarDate(item.StartDate),
		EndDate:   season.CalendarDate(item.EndDate),
		IsActive:  item.IsActive,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) Update(ctx context.Context, item season.Season) error {
	query, args, err := qb.Update("seasons").
		Set("name", item.Name).
		Set("start_date", season.CalendarDate(item.StartDate)).
		Set("end_date", season.CalendarDate(item.EndDate)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update season query: %w", err)
	}

	affected, err := execAffected(ctx, r.db, query, args...)
	if err != nil {
		return fmt.Errorf("update season: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update season: not found")
	}
	return nil
}

// SetActive retries once when a concurrent activation for the same team hits
// the one-active-season index.
func (r *SeasonRepository) SetActive(ctx context.Context, teamID, id string) error {
	err := r.setActive(ctx, teamID, id)
	if isUniqueViolation(err) {
		err = r.setActive(ctx, teamID, id)
	}
	return err
}

func (r *SeasonRepository) setActive(ctx context.Context, teamID, id string) error {
	return withTx(ctx, r.db, "set active season", func(tx *sqlx.Tx) error {
		clearQuery, clearArgs, err := qb.Update("seasons").
			Set("is_active", false).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("team_public_id", teamID),
				qb.Eq("is_active", true),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear active season query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("clear active season: %w", err)
		}

		setQuery, setArgs, err := qb.Update("seasons").
			Set("is_active", true).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("public_id", id),
				qb.Eq("team_public_id", teamID),
			).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build set active season query: %w", err)
		}
		affected, err := execAffected(ctx, tx, setQuery, setArgs...)
		if err != nil {
			return fmt.Errorf("set active season: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("set active season: not found")
		}
		return nil
	})
}

func (r *SeasonRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom("seasons").
		Where(qb.Eq("public_id", id)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete season query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isForeignKeyViolation(err) {
			return season.ErrInUse
		}
		return fmt.Errorf("delete season: %w", err)
	}
	return nil
}
