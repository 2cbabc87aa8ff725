package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	qb "github.com/riskibarqy/team-growth/internal/platform/querybuilder"
)

var statRecordSelectColumns = []string{
	"id", "public_id", "match_public_id", "player_public_id",
	"minutes_played", "goals", "assists", "tackles", "interceptions", "saves", "chances_created", "coach_rating",
	"feedback", "reflection", "ai_suggestions", "baseline_attributes", "reflection_unlocked_at",
	"created_at", "updated_at",
}

var snapshotSelectColumns = append([]string{
	"id", "public_id", "player_public_id", "match_public_id", "match_date", "opponent", "created_at",
}, attributeSelectColumns...)

const statRecordUpsertSuffix = `ON CONFLICT (match_public_id, player_public_id) DO UPDATE SET
    minutes_played = EXCLUDED.minutes_played,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    tackles = EXCLUDED.tackles,
    interceptions = EXCLUDED.interceptions,
    saves = EXCLUDED.saves,
    chances_created = EXCLUDED.chances_created,
    coach_rating = EXCLUDED.coach_rating,
    feedback = EXCLUDED.feedback,
    reflection = EXCLUDED.reflection,
    ai_suggestions = EXCLUDED.ai_suggestions,
    baseline_attributes = EXCLUDED.baseline_attributes,
    reflection_unlocked_at = EXCLUDED.reflection_unlocked_at,
    updated_at = NOW()`

type MatchStatsRepository struct {
	db *sqlx.DB
}

func NewMatchStatsRepository(db *sqlx.DB) *MatchStatsRepository {
	return &MatchStatsRepository{db: db}
}

func (r *MatchStatsRepository) Get(ctx context.Context, matchID, playerID string) (matchstats.Record, bool, error) {
	return r.get(ctx, r.db, matchID, playerID, false)
}

func (r *MatchStatsRepository) get(ctx context.Context, q sqlx.QueryerContext, matchID, playerID string, forUpdate bool) (matchstats.Record, bool, error) {
	builder := qb.Select(statRecordSelectColumns...).From("match_stat_records").
		Where(
			qb.Eq("match_public_id", matchID),
			qb.Eq("player_public_id", playerID),
		)
	if forUpdate {
		builder = builder.ForUpdate()
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return matchstats.Record{}, false, fmt.Errorf("build get match stats query: %w", err)
	}

	var row statRecordTableModel
	found, err := getOne(ctx, q, &row, query, args...)
	if err != nil {
		return matchstats.Record{}, false, fmt.Errorf("get match stats: %w", err)
	}
	if !found {
		return matchstats.Record{}, false, nil
	}
	return row.toDomain(), true, nil
}

func (r *MatchStatsRepository) ListByMatch(ctx context.Context, matchID string) ([]matchstats.Record, error) {
	return r.list(ctx, qb.Eq("match_public_id", matchID))
}

func (r *MatchStatsRepository) ListByPlayer(ctx context.Context, playerID string) ([]matchstats.Record, error) {
	return r.list(ctx, qb.Eq("player_public_id", playerID))
}

func (r *MatchStatsRepository) list(ctx context.Context, cond qb.Condition) ([]matchstats.Record, error) {
	query, args, err := qb.Select(statRecordSelectColumns...).From("match_stat_records").
		Where(cond).
		OrderBy("match_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list match stats query: %w", err)
	}

	var rows []statRecordTableModel
	if err := selectAll(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list match stats: %w", err)
	}

	out := make([]matchstats.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// SaveSubmission locks the player row first, which serialises every
// submission for that player, then the player's records. A concurrent first
// insert of the same pair lands on ON CONFLICT and becomes an update.
func (r *MatchStatsRepository) SaveSubmission(
	ctx context.Context,
	matchID, playerID string,
	apply func(matchstats.Current) (matchstats.Submission, error),
) (matchstats.Submission, error) {
	var out matchstats.Submission
	err := withTx(ctx, r.db, "save match stats", func(tx *sqlx.Tx) error {
		attrs, found, err := lockPlayerAttributes(ctx, tx, playerID)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("save match stats: player %s not found", playerID)
		}

		history, err := r.lockGradedMatches(ctx, tx, playerID)
		if err != nil {
			return err
		}
		cur := matchstats.Current{PlayerAttributes: attrs, History: history}
		for _, g := range history {
			if g.Record.MatchID == matchID {
				cur.Record, cur.Exists = g.Record, true
			}
		}

		sub, err := apply(cur)
		if err != nil {
			return err
		}

		if err := upsertStatRecord(ctx, tx, sub.Record); err != nil {
			return err
		}
		if err := insertSnapshot(ctx, tx, sub.Snapshot); err != nil {
			return err
		}
		for _, rev := range sub.Revisions {
			if err := upsertStatRecord(ctx, tx, rev.Record); err != nil {
				return err
			}
			if err := insertSnapshot(ctx, tx, rev.Snapshot); err != nil {
				return err
			}
		}
		if err := updatePlayerAttributes(ctx, tx, playerID, sub.Attributes); err != nil {
			return err
		}

		out = sub
		return nil
	})
	if err != nil {
		return matchstats.Submission{}, err
	}
	return out, nil
}

// lockGradedMatches locks every record of the player and attaches the match
// date and opponent that order the growth chain.
func (r *MatchStatsRepository) lockGradedMatches(ctx context.Context, tx *sqlx.Tx, playerID string) ([]matchstats.GradedMatch, error) {
	query, args, err := qb.Select(statRecordSelectColumns...).From("match_stat_records").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("id").
		ForUpdate().
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build lock player match stats query: %w", err)
	}
	var rows []statRecordTableModel
	if err := selectAll(ctx, tx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("lock player match stats: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	matchIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		matchIDs = append(matchIDs, row.MatchID)
	}
	query, args, err = qb.Select(matchSelectColumns...).From("matches").
		Where(qb.In("public_id", matchIDs)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build graded matches query: %w", err)
	}
	var matches []matchTableModel
	if err := selectAll(ctx, tx, &matches, query, args...); err != nil {
		return nil, fmt.Errorf("list graded matches: %w", err)
	}
	byID := make(map[string]match.Match, len(matches))
	for _, row := range matches {
		byID[row.PublicID] = row.toDomain()
	}

	out := make([]matchstats.GradedMatch, 0, len(rows))
	for _, row := range rows {
		m, ok := byID[row.MatchID]
		if !ok {
			continue
		}
		out = append(out, matchstats.GradedMatch{Record: row.toDomain(), MatchDate: m.MatchDate, Opponent: m.Opponent})
	}
	return out, nil
}

func (r *MatchStatsRepository) Update(ctx context.Context, matchID, playerID string, fn func(*matchstats.Record) error) (matchstats.Record, error) {
	var out matchstats.Record
	err := withTx(ctx, r.db, "update match stats", func(tx *sqlx.Tx) error {
		existing, found, err := r.get(ctx, tx, matchID, playerID, true)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("update match stats: record for player %s in match %s not found", playerID, matchID)
		}

		working := existing.Clone()
		if err := fn(&working); err != nil {
			return err
		}
		if err := upsertStatRecord(ctx, tx, working); err != nil {
			return err
		}

		out = working
		return nil
	})
	if err != nil {
		return matchstats.Record{}, err
	}
	return out, nil
}

func upsertStatRecord(ctx context.Context, tx *sqlx.Tx, rec matchstats.Record) error {
	query, args, err := qb.InsertModel("match_stat_records", statRecordWrite(rec), statRecordUpsertSuffix)
	if err != nil {
		return fmt.Errorf("build upsert match stats query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match stats: %w", err)
	}
	return nil
}

func insertSnapshot(ctx context.Context, tx *sqlx.Tx, snap growth.Snapshot) error {
	query, args, err := qb.InsertModel("player_attribute_snapshots", snapshotInsertModel{
		PublicID:      snap.ID,
		PlayerID:      snap.PlayerID,
		MatchID:       snap.MatchID,
		Shooting:      snap.Attributes.Shooting,
		Passing:       snap.Attributes.Passing,
		Dribbling:     snap.Attributes.Dribbling,
		Defense:       snap.Attributes.Defense,
		Physical:      snap.Attributes.Physical,
		CoachGrade:    snap.Attributes.CoachGrade,
		OverallRating: snap.Attributes.OverallRating,
		MatchDate:     season.CalendarDate(snap.MatchDate),
		Opponent:      snap.Opponent,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert snapshot query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

type SnapshotRepository struct {
	db *sqlx.DB
}

func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) ListByPlayer(ctx context.Context, playerID string) ([]growth.Snapshot, error) {
	query, args, err := qb.Select(snapshotSelectColumns...).From("player_attribute_snapshots").
		Where(qb.Eq("player_public_id", playerID)).
		OrderBy("match_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list snapshots query: %w", err)
	}

	var rows []snapshotTableModel
	if err := selectAll(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}

	out := make([]growth.Snapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
