package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo roster into an empty players table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	return withTx(ctx, db, "bootstrap seed", func(tx *sqlx.Tx) error {
		for _, p := range memory.SeedPlayers() {
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, team_public_id, user_id, name, position, jersey_number)
VALUES (:public_id, :team_public_id, :user_id, :name, :position, :jersey_number)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
				"public_id":      p.ID,
				"team_public_id": p.TeamID,
				"user_id":        p.UserID,
				"name":           p.Name,
				"position":       string(p.Position),
				"jersey_number":  p.JerseyNumber,
			})
			if err != nil {
				return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
			}
			sqlQuery = tx.Rebind(sqlQuery)
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("seed player %s: %w", p.ID, err)
			}
		}
		return nil
	})
}
