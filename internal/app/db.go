package app

import (
	"context"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const (
	dbMaxOpenConns    = 20
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
	dbPingTimeout     = 5 * time.Second
)

// openDB opens a traced Postgres pool and pings it once.
func openDB(ctx context.Context, cfg config.Config, logger *logging.Logger) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	dbName := dbNameFromURL(cfg.DBURL)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "open postgres")
	}
	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, crerr.Wrapf(err, "ping postgres %s", dbName)
	}

	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	logger.Info("postgres connected",
		"db_name", dbName,
		"disable_prepared_binary_result", cfg.DBDisablePreparedBinary,
	)
	return db, nil
}

const (
	preparedBinaryParam  = "disable_prepared_binary_result"
	maxTracedQueryLength = 512
)

// normalizeDBURL opts out of binary results for prepared statements, which
// transaction-mode poolers mishandle. An explicit setting in dsn wins. Both
// URL and key=value DSNs are accepted.
func normalizeDBURL(dsn string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return dsn
	}

	if !strings.Contains(dsn, "://") {
		if strings.Contains(dsn, preparedBinaryParam+"=") {
			return dsn
		}
		return strings.TrimSpace(dsn) + " " + preparedBinaryParam + "=yes"
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return dsn
	}
	query := parsed.Query()
	if query.Has(preparedBinaryParam) {
		return dsn
	}
	query.Set(preparedBinaryParam, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL names the database for span attributes; "" when unknown.
func dbNameFromURL(dsn string) string {
	dsn = strings.TrimSpace(dsn)
	if parsed, err := url.Parse(dsn); err == nil && parsed.Scheme != "" {
		return strings.Trim(parsed.Path, "/")
	}

	for _, field := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(field, "=")
		if ok && key == "dbname" {
			return strings.Trim(value, `"'`)
		}
	}
	return ""
}

// formatDBQueryForTrace collapses whitespace so multi-line statements read on
// one line in traces, capped at maxTracedQueryLength bytes.
func formatDBQueryForTrace(query string) string {
	normalized := strings.Join(strings.Fields(query), " ")
	if len(normalized) <= maxTracedQueryLength {
		return normalized
	}
	return normalized[:maxTracedQueryLength] + "..."
}
