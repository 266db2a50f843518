package journal

import (
	"context"
	"database/sql"
	"time"

	"github.com/petrijr/machina/pkg/api"
)

// SQLiteStore persists transition records in SQLite.
//
// It expects an *sql.DB that uses a SQLite driver (for example,
// "modernc.org/sqlite"). The caller is responsible for importing the driver:
//
//	import _ "modernc.org/sqlite"
type SQLiteStore struct {
	db *sql.DB
}

var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore initializes the required schema in the given database and
// returns a new SQLiteStore.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS transitions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			instance_id TEXT NOT NULL,
			machine TEXT NOT NULL,
			seq INTEGER NOT NULL,
			from_label TEXT NOT NULL,
			to_label TEXT NOT NULL,
			data_before TEXT NOT NULL DEFAULT '',
			at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_transitions_instance_id ON transitions(instance_id, seq);
	`)
	return err
}

func (s *SQLiteStore) Append(ctx context.Context, rec Record) error {
	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transitions (instance_id, machine, seq, from_label, to_label, data_before, at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.InstanceID,
		rec.Machine,
		rec.Seq,
		string(rec.From),
		string(rec.To),
		rec.DataBefore,
		at.UnixNano(),
	)
	return err
}

func (s *SQLiteStore) List(ctx context.Context, instanceID string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT instance_id, machine, seq, from_label, to_label, data_before, at
		FROM transitions
		WHERE instance_id = ?
		ORDER BY seq ASC`, instanceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			rec  Record
			from string
			to   string
			atN  int64
		)
		if err := rows.Scan(&rec.InstanceID, &rec.Machine, &rec.Seq, &from, &to, &rec.DataBefore, &atN); err != nil {
			return nil, err
		}
		rec.From = api.StateLabel(from)
		rec.To = api.StateLabel(to)
		rec.At = time.Unix(0, atN)
		out = append(out, rec)
	}
	return out, rows.Err()
}
