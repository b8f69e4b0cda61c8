package export

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/amishk599/careerpath/internal/miner"
	"github.com/amishk599/careerpath/internal/model"
)

// Ensure SQLiteExporter implements Exporter.
var _ Exporter = (*SQLiteExporter)(nil)

const (
	sideAntecedent = "A"
	sideConsequent = "C"
)

// SQLiteExporter writes rule exports into a SQLite file. Each Export call
// records one run (uuid, source, thresholds) and its ranked rules, so one
// file can hold exports taken at several thresholds.
type SQLiteExporter struct {
	db      *sql.DB
	lastRun string
}

// Run is one recorded export.
type Run struct {
	ID            string
	Source        string
	DatasetID     string
	MinSupport    float64
	MinConfidence float64
	Rules         int
	CreatedAt     time.Time
}

// NewSQLiteExporter opens (or creates) a SQLite database at dbPath and ensures
// the export tables exist.
func NewSQLiteExporter(dbPath string) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Verify the connection is alive.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	schema := []string{
		`CREATE TABLE IF NOT EXISTS rule_exports (
			run_id         TEXT PRIMARY KEY,
			source         TEXT NOT NULL,
			dataset_id     TEXT NOT NULL,
			min_support    REAL NOT NULL,
			min_confidence REAL NOT NULL,
			created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS rules (
			run_id             TEXT NOT NULL REFERENCES rule_exports(run_id),
			rank               INTEGER NOT NULL,
			antecedents        TEXT NOT NULL,
			consequents        TEXT NOT NULL,
			antecedent_support REAL NOT NULL,
			consequent_support REAL NOT NULL,
			support            REAL NOT NULL,
			confidence         REAL NOT NULL,
			lift               REAL NOT NULL,
			PRIMARY KEY (run_id, rank)
		)`,
		// One row per position so names containing the list separator read back intact.
		`CREATE TABLE IF NOT EXISTS rule_items (
			run_id   TEXT NOT NULL,
			rank     INTEGER NOT NULL,
			side     TEXT NOT NULL CHECK (side IN ('A', 'C')),
			ord      INTEGER NOT NULL,
			position TEXT NOT NULL,
			PRIMARY KEY (run_id, rank, side, ord),
			FOREIGN KEY (run_id, rank) REFERENCES rules(run_id, rank)
		)`,
	}
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating export tables: %w", err)
		}
	}

	return &SQLiteExporter{db: db}, nil
}

// Export stores rules under a new run id in a single transaction.
func (s *SQLiteExporter) Export(rules []model.Rule, meta Meta) error {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO rule_exports (run_id, source, dataset_id, min_support, min_confidence, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		runID, meta.Source, meta.DatasetID, meta.Thresholds.MinSupport, meta.Thresholds.MinConfidence, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording export run %s: %w", runID, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO rules
		(run_id, rank, antecedents, consequents, antecedent_support, consequent_support, support, confidence, lift)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing rule insert: %w", err)
	}
	defer stmt.Close()

	itemStmt, err := tx.Prepare("INSERT INTO rule_items (run_id, rank, side, ord, position) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing rule item insert: %w", err)
	}
	defer itemStmt.Close()

	for i, r := range rules {
		rank := i + 1
		_, err := stmt.Exec(runID, rank,
			miner.Join(r.Antecedents), miner.Join(r.Consequents),
			r.AntecedentSupport, r.ConsequentSupport, r.Support, r.Confidence, r.Lift,
		)
		if err != nil {
			return fmt.Errorf("inserting rule %d: %w", rank, err)
		}
		for side, items := range map[string][]string{sideAntecedent: r.Antecedents, sideConsequent: r.Consequents} {
			for ord, pos := range items {
				if _, err := itemStmt.Exec(runID, rank, side, ord, pos); err != nil {
					return fmt.Errorf("inserting rule %d position %q: %w", rank, pos, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export %s: %w", runID, err)
	}
	s.lastRun = runID
	return nil
}

// LastRunID returns the id of the most recent successful Export, or "".
func (s *SQLiteExporter) LastRunID() string {
	return s.lastRun
}

// Runs lists recorded exports, newest first.
func (s *SQLiteExporter) Runs() ([]Run, error) {
	rows, err := s.db.Query(`SELECT e.run_id, e.source, e.dataset_id, e.min_support, e.min_confidence, e.created_at,
			(SELECT COUNT(*) FROM rules r WHERE r.run_id = e.run_id)
		FROM rule_exports e ORDER BY e.created_at DESC, e.rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing export runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Source, &r.DatasetID, &r.MinSupport, &r.MinConfidence, &r.CreatedAt, &r.Rules); err != nil {
			return nil, fmt.Errorf("scanning export run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Rules reads back the rules of one run in rank order.
func (s *SQLiteExporter) Rules(runID string) ([]model.Rule, error) {
	rows, err := s.db.Query(`SELECT rank, antecedent_support, consequent_support, support, confidence, lift
		FROM rules WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("reading rules of run %s: %w", runID, err)
	}

	var (
		rules  []model.Rule
		byRank = make(map[int]int)
	)
	for rows.Next() {
		var (
			r    model.Rule
			rank int
		)
		if err := rows.Scan(&rank, &r.AntecedentSupport, &r.ConsequentSupport, &r.Support, &r.Confidence, &r.Lift); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning rule: %w", err)
		}
		byRank[rank] = len(rules)
		rules = append(rules, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rules of run %s: %w", runID, err)
	}

	items, err := s.db.Query(`SELECT rank, side, position FROM rule_items
		WHERE run_id = ? ORDER BY rank, side, ord`, runID)
	if err != nil {
		return nil, fmt.Errorf("reading rule positions of run %s: %w", runID, err)
	}
	defer items.Close()

	for items.Next() {
		var (
			rank      int
			side, pos string
		)
		if err := items.Scan(&rank, &side, &pos); err != nil {
			return nil, fmt.Errorf("scanning rule position: %w", err)
		}
		idx, ok := byRank[rank]
		if !ok {
			continue
		}
		if side == sideAntecedent {
			rules[idx].Antecedents = append(rules[idx].Antecedents, pos)
		} else {
			rules[idx].Consequents = append(rules[idx].Consequents, pos)
		}
	}
	return rules, items.Err()
}

// Close closes the underlying database connection.
func (s *SQLiteExporter) Close() error {
	return s.db.Close()
}
