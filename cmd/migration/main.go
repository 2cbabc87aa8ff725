package main

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

// command runs against an open migrator and returns a one-line summary.
type command struct {
	usage string
	run   func(m *migrate.Migrate, args []string) (string, error)
}

var commands = map[string]command{
	"up": {
		usage: "up",
		run: func(m *migrate.Migrate, _ []string) (string, error) {
			return "migrations applied", ignoreNoChange(m.Up())
		},
	},
	"down": {
		usage: "down [steps=1]",
		run: func(m *migrate.Migrate, args []string) (string, error) {
			steps, err := parseSteps(args)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("rolled back %d migration(s)", steps), ignoreNoChange(m.Steps(-steps))
		},
	},
	"version": {
		usage: "version",
		run: func(m *migrate.Migrate, _ []string) (string, error) {
			version, dirty, err := m.Version()
			if errors.Is(err, migrate.ErrNilVersion) {
				return "version: none dirty: false", nil
			}
			if err != nil {
				return "", crerr.Wrap(err, "read version")
			}
			return fmt.Sprintf("version: %d dirty: %t", version, dirty), nil
		},
	},
	"force": {
		usage: "force <version>",
		run: func(m *migrate.Migrate, args []string) (string, error) {
			if len(args) == 0 {
				return "", errors.New("force requires a version argument")
			}
			version, err := parseVersion(args[0])
			if err != nil {
				return "", err
			}
			if err := m.Force(version); err != nil {
				return "", crerr.Wrapf(err, "force version %d", version)
			}
			return fmt.Sprintf("forced version to %d", version), nil
		},
	},
	"goto": {
		usage: "goto <version>",
		run: func(m *migrate.Migrate, args []string) (string, error) {
			if len(args) == 0 {
				return "", errors.New("goto requires a target version argument")
			}
			target, err := parseTarget(args[0])
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("migrated to version %d", target), ignoreNoChange(m.Migrate(target))
		},
	},
}

func main() {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "dev"
	}
	logger := logging.New(env, logging.LevelInfo).With("component", "migration")
	defer func() { _ = logger.Sync() }()

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(2)
	}
	name := strings.ToLower(strings.TrimSpace(os.Args[1]))
	cmd, ok := commands[name]
	if !ok {
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if err := run(logger, name, cmd, os.Args[2:]); err != nil {
		logger.Error("migration failed", "command", name, "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(logger *logging.Logger, name string, cmd command, args []string) error {
	if err := loadEnvFile(); err != nil {
		return err
	}

	dbURL := strings.TrimSpace(os.Getenv("DB_URL"))
	if dbURL == "" {
		return errors.New("DB_URL is required")
	}

	dir, err := resolveMigrationsDir()
	if err != nil {
		return err
	}
	sourceURL := "file://" + filepath.ToSlash(dir)

	m, err := migrate.New(sourceURL, normalizeDBURL(dbURL))
	if err != nil {
		return crerr.Wrap(err, "create migrator")
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if err := errors.Join(srcErr, dbErr); err != nil {
			logger.Warn("close migrator failed", "error", err)
		}
	}()

	summary, err := cmd.run(m, args)
	if err != nil {
		return err
	}
	logger.Info(summary, "command", name, "source", sourceURL)
	return nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

// loadEnvFile reads ENV_FILE when set, otherwise an optional ./.env.
func loadEnvFile() error {
	path := strings.TrimSpace(os.Getenv("ENV_FILE"))
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return crerr.Wrapf(err, "load env file %s", path)
	}
	return nil
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}
	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid down steps %q", args[0])
	}
	if steps <= 0 {
		return 0, errors.New("down steps must be > 0")
	}
	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid version %q", raw)
	}
	if value < 0 {
		return 0, errors.New("version must be >= 0")
	}
	return value, nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 0)
	if err != nil {
		return 0, crerr.Wrapf(err, "invalid target version %q", raw)
	}
	return uint(value), nil
}

var migrationDirEnvs = []string{"MIGRATIONS_DIR", "MIGRATIONS_PATH"}

func resolveMigrationsDir() (string, error) {
	candidates := make([]string, 0, len(migrationDirEnvs)+2)
	for _, key := range migrationDirEnvs {
		candidates = append(candidates, strings.TrimSpace(os.Getenv(key)))
	}
	candidates = append(candidates, "./db/migrations", "/app/db/migrations")

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && info.IsDir() {
			return abs, nil
		}
	}
	return "", fmt.Errorf("migration directory not found (checked %s, ./db/migrations, /app/db/migrations)",
		strings.Join(migrationDirEnvs, ", "))
}

// normalizeDBURL applies DB_DISABLE_PREPARED_BINARY_RESULT the same way the
// api does for URL-style DSNs.
func normalizeDBURL(raw string) string {
	enabled, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("DB_DISABLE_PREPARED_BINARY_RESULT")))
	if err != nil || !enabled {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Has("disable_prepared_binary_result") {
		return raw
	}
	query.Set("disable_prepared_binary_result", "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

func printUsage(w io.Writer) {
	bin := filepath.Base(os.Args[0])
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(w, "usage: %s <%s> [args]\n", bin, strings.Join(names, "|"))
	for _, name := range names {
		fmt.Fprintf(w, "  %s %s\n", bin, commands[name].usage)
	}
}
