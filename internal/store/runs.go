package store

import (
	"database/sql"
	"time"

	_ "github.com/glebarez/go-sqlite"

	"github.com/rohan/saarthi/internal/executor"
)

type Store struct {
	DB *sql.DB
}

func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Create tables if not exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			instruction TEXT,
			persona TEXT,
			status TEXT,
			reason TEXT,
			total_steps INTEGER,
			started_at DATETIME,
			finished_at DATETIME
		);`,
		`CREATE TABLE IF NOT EXISTS step_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER,
			ord INTEGER,
			kind TEXT,
			target TEXT,
			outcome TEXT,
			detail TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			chat_id TEXT,
			instruction TEXT,
			persona TEXT,
			interval_seconds INTEGER,
			last_run DATETIME,
			status TEXT DEFAULT 'active'
		);`,
	}
	for _, q := range queries {
		_, err = db.Exec(q)
		if err != nil {
			return nil, err
		}
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// SaveRun persists an execution result and its attempted steps.
func (s *Store) SaveRun(res *executor.Result) (int64, error) {
	out, err := s.DB.Exec(
		`INSERT INTO runs (instruction, persona, status, reason, total_steps, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Instruction, res.Persona, string(res.Status), res.Reason,
		res.TotalSteps, res.StartedAt, res.FinishedAt,
	)
	if err != nil {
		return 0, err
	}
	runID, err := out.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, step := range res.Steps {
		_, err = s.DB.Exec(
			`INSERT INTO step_results (run_id, ord, kind, target, outcome, detail)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, step.Order, string(step.Kind), step.Target, string(step.Outcome), step.Detail,
		)
		if err != nil {
			return runID, err
		}
	}
	return runID, nil
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID          int64
	Instruction string
	Persona     string
	Status      string
	TotalSteps  int
	StartedAt   time.Time
}

func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := s.DB.Query(
		`SELECT id, instruction, persona, status, total_steps, started_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Instruction, &r.Persona, &r.Status, &r.TotalSteps, &r.StartedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// StepRecord is one persisted step outcome.
type StepRecord struct {
	Order   int
	Kind    string
	Target  string
	Outcome string
	Detail  string
}

func (s *Store) RunSteps(runID int64) ([]StepRecord, error) {
	rows, err := s.DB.Query(
		`SELECT ord, kind, target, outcome, detail
		 FROM step_results WHERE run_id = ? ORDER BY ord`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []StepRecord
	for rows.Next() {
		var r StepRecord
		if err := rows.Scan(&r.Order, &r.Kind, &r.Target, &r.Outcome, &r.Detail); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
