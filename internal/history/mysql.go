package history

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"contracheck/internal/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS contracheck_runs (
		run_id VARCHAR(64) NOT NULL PRIMARY KEY,
		detector VARCHAR(1024) NOT NULL,
		total_cases INT NOT NULL,
		passed_cases INT NOT NULL,
		failed_cases INT NOT NULL,
		verdict BOOLEAN NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		finished_at VARCHAR(64) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS contracheck_cases (
		run_id VARCHAR(64) NOT NULL,
		seq INT NOT NULL,
		fixture VARCHAR(255) NOT NULL,
		mode VARCHAR(16) NOT NULL,
		expected_exit_code INT NOT NULL,
		actual_exit_code INT NOT NULL,
		passed BOOLEAN NOT NULL,
		failure VARCHAR(64) NOT NULL,
		message TEXT,
		duration_ms BIGINT NOT NULL,
		PRIMARY KEY (run_id, seq)
	)`,
}

// MySQLRecorder writes runs and their cases to MySQL
type MySQLRecorder struct {
	db     *sql.DB
	target string
}

// NewMySQLRecorder parses dsn and prepares a connection pool. No connection is
// made until the first Record.
func NewMySQLRecorder(dsn string) (*MySQLRecorder, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse history dsn: %w", err)
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("create history connector: %w", err)
	}

	return &MySQLRecorder{
		db:     sql.OpenDB(connector),
		target: Describe(cfg),
	}, nil
}

// Target describes the database without credentials.
func (r *MySQLRecorder) Target() string {
	return r.target
}

// Record stores the run and every case in one transaction.
func (r *MySQLRecorder) Record(ctx context.Context, report *domain.RunReport) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping history database %s: %w", r.target, err)
	}
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create history tables: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	meta := report.Meta
	_, err = tx.ExecContext(ctx,
		`INSERT INTO contracheck_runs
			(run_id, detector, total_cases, passed_cases, failed_cases, verdict, duration_seconds, finished_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.RunID, meta.Detector, meta.TotalCases, meta.PassedCases, meta.FailedCases,
		meta.Verdict, meta.DurationSeconds, meta.Timestamp)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", meta.RunID, err)
	}

	for i, c := range report.Cases {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO contracheck_cases
				(run_id, seq, fixture, mode, expected_exit_code, actual_exit_code, passed, failure, message, duration_ms)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			meta.RunID, i+1, c.Pair.Name, string(c.Mode), c.ExpectedExitCode, c.ActualExitCode,
			c.Passed, string(c.Failure), c.Message, c.Duration.Milliseconds())
		if err != nil {
			return fmt.Errorf("insert case %d of run %s: %w", i+1, meta.RunID, err)
		}
	}

	return tx.Commit()
}

// Close releases the connection pool.
func (r *MySQLRecorder) Close() error {
	return r.db.Close()
}

// Describe renders a DSN config as user@addr/db, never including the password.
func Describe(cfg *mysql.Config) string {
	target := cfg.Addr + "/" + cfg.DBName
	if cfg.User != "" {
		target = cfg.User + "@" + target
	}
	return target
}
