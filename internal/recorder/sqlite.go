package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists screen results to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so ad-hoc reads don't block the screen's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS screen_results (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			ticker         TEXT NOT NULL,
			gap_date       TEXT NOT NULL,
			symbol_id      INTEGER,
			last_price     REAL,
			pivot_low      REAL,
			pivot_low_ago  INTEGER,
			pivot_high     REAL,
			pivot_high_ago INTEGER,
			avg_volume     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_screen_ts ON screen_results(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_screen_ticker_date ON screen_results(ticker, gap_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScreen(rec *ScreenRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO screen_results
		(timestamp, ticker, gap_date, symbol_id, last_price,
		 pivot_low, pivot_low_ago, pivot_high, pivot_high_ago, avg_volume)
		VALUES (?,?,?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), rec.Ticker, rec.GapDate, rec.SymbolID, rec.LastPrice,
		rec.PivotLow, rec.PivotLowAgo, rec.PivotHigh, rec.PivotHighAgo, rec.AvgVolume,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
