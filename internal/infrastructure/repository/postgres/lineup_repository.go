package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	qb "github.com/riskibarqy/team-growth/internal/platform/querybuilder"
)

var lineupSelectColumns = []string{
	"id", "public_id", "match_public_id", "team_public_id", "formation", "created_at", "updated_at",
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) GetByID(ctx context.Context, id string) (lineup.Lineup, bool, error) {
	return r.getBy(ctx, r.db, qb.Eq("public_id", id), false)
}

func (r *LineupRepository) GetByMatch(ctx context.Context, matchID string) (lineup.Lineup, bool, error) {
	return r.getBy(ctx, r.db, qb.Eq("match_public_id", matchID), false)
}

func (r *LineupRepository) getBy(ctx context.Context, q sqlx.QueryerContext, cond qb.Condition, forUpdate bool) (lineup.Lineup, bool, error) {
	builder := qb.Select(lineupSelectColumns...).From("lineups").Where(cond)
	if forUpdate {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("build get lineup query: %w", err)
	}

	var row lineupTableModel
	found, err := getOne(ctx, q, &row, query, args...)
	if err != nil {
		return lineup.Lineup{}, false, fmt.Errorf("get lineup: %w", err)
	}
	if !found {
		return lineup.Lineup{}, false, nil
	}

	assignments, err := r.listAssignments(ctx, q, row.PublicID)
	if err != nil {
		return lineup.Lineup{}, false, err
	}
	return row.toDomain(assignments), true, nil
}

func (r *LineupRepository) listAssignments(ctx context.Context, q sqlx.QueryerContext, lineupID string) ([]lineupAssignmentModel, error) {
	query, args, err := qb.Select("lineup_public_id", "slot_code", "player_public_id").From("lineup_assignments").
		Where(qb.Eq("lineup_public_id", lineupID)).
		OrderBy("slot_code").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup assignments query: %w", err)
	}

	var rows []lineupAssignmentModel
	if err := selectAll(ctx, q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineup assignments: %w", err)
	}
	return rows, nil
}

func (r *LineupRepository) SelectFormation(ctx context.Context, candidate lineup.Lineup) (lineup.Lineup, error) {
	var out lineup.Lineup
	err := withTx(ctx, r.db, "select formation", func(tx *sqlx.Tx) error {
		query, args, err := qb.InsertModel("lineups", lineupInsertModel{
			PublicID:  candidate.ID,
			MatchID:   candidate.MatchID,
			TeamID:    candidate.TeamID,
			Formation: string(candidate.Formation),
		}, `ON CONFLICT (match_public_id) DO UPDATE SET
    formation = EXCLUDED.formation,
    updated_at = NOW()
RETURNING `+joinColumns(lineupSelectColumns))
		if err != nil {
			return fmt.Errorf("build upsert lineup query: %w", err)
		}

		var row lineupTableModel
		if err := tx.GetContext(ctx, &row, query, args...); err != nil {
			return fmt.Errorf("upsert lineup: %w", err)
		}

		clearQuery, clearArgs, err := qb.DeleteFrom("lineup_assignments").
			Where(qb.Eq("lineup_public_id", row.PublicID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build clear lineup assignments query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
			return fmt.Errorf("clear lineup assignments: %w", err)
		}

		out = row.toDomain(nil)
		return nil
	})
	if err != nil {
		return lineup.Lineup{}, err
	}
	return out, nil
}

// Mutate locks the lineup row, applies fn to the loaded state and rewrites
// only the slots that changed.
func (r *LineupRepository) Mutate(ctx context.Context, lineupID string, fn func(*lineup.Lineup) error) (lineup.Lineup, error) {
	var out lineup.Lineup
	err := withTx(ctx, r.db, "mutate lineup", func(tx *sqlx.Tx) error {
		current, found, err := r.getBy(ctx, tx, qb.Eq("public_id", lineupID), true)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("mutate lineup: lineup %s not found", lineupID)
		}

		working := current.Clone()
		if err := fn(&working); err != nil {
			return err
		}

		removed, upserted := diffAssignments(current.Assignments, working.Assignments)
		if len(removed) > 0 {
			query, args, err := qb.DeleteFrom("lineup_assignments").
				Where(
					qb.Eq("lineup_public_id", lineupID),
					qb.In("slot_code", removed),
				).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build delete lineup assignments query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("delete lineup assignments: %w", err)
			}
		}
		for _, slot := range upserted {
			query, args, err := qb.InsertInto("lineup_assignments").
				Columns("lineup_public_id", "slot_code", "player_public_id").
				Values(lineupID, slot, working.Assignments[slot]).
				Suffix(`ON CONFLICT (lineup_public_id, slot_code) DO UPDATE SET player_public_id = EXCLUDED.player_public_id`).
				ToSQL()
			if err != nil {
				return fmt.Errorf("build upsert lineup assignment query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert lineup assignment %s: %w", slot, err)
			}
		}

		touchQuery, touchArgs, err := qb.Update("lineups").
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("public_id", lineupID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build touch lineup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, touchQuery, touchArgs...); err != nil {
			return fmt.Errorf("touch lineup: %w", err)
		}

		out = working
		return nil
	})
	if err != nil {
		return lineup.Lineup{}, err
	}
	return out, nil
}

// diffAssignments lists slots to delete and slots to write. Deletes run first
// so a player moved between slots never trips the per-lineup player index.
func diffAssignments(before, after map[string]string) (removed, upserted []string) {
	for slot, playerID := range before {
		if next, ok := after[slot]; !ok || next != playerID {
			removed = append(removed, slot)
		}
	}
	for slot, playerID := range after {
		if prev, ok := before[slot]; !ok || prev != playerID {
			upserted = append(upserted, slot)
		}
	}
	sort.Strings(removed)
	sort.Strings(upserted)
	return removed, upserted
}
