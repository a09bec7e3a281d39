package audit

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// Store handles audit message persistence to database
type Store struct {
	db *sql.DB
}

// Message represents an audit message for database persistence
type Message struct {
	Facility  int            `json:"facility"`
	Severity  int            `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Hostname  string         `json:"hostname"`
	Appname   string         `json:"appname"`
	Procid    string         `json:"procid"`
	Msgid     string         `json:"msgid"`
	Sdata     map[string]any `json:"sdata"`
	Message   string         `json:"message"`
}

// NewStore opens the audit database at dbURL.
// Returns nil if dbURL is empty (audit DB disabled).
func NewStore(dbURL string) (*Store, error) {
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB creates a store with an existing database connection
// Useful for testing with sqlmock
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s != nil && s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists an audit event to the database
func (s *Store) Save(event Event) error {
	if s == nil || s.db == nil {
		return nil
	}

	hostname, _ := os.Hostname()

	sdataJSON, err := json.Marshal(event.StructuredData())
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO messages (facility, severity, timestamp, hostname, appname, procid, msgid, sdata, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		event.Facility(),
		int(event.Severity()),
		time.Now().UTC(),
		hostname,
		AppName,
		os.Getpid(),
		event.MessageID(),
		sdataJSON,
		event.Message(),
	)

	return err
}

// Messages returns the most recent audit messages with the given msgid, newest first
func (s *Store) Messages(msgid string, limit int) ([]Message, error) {
	rows, err := s.db.Query(`
		SELECT facility, severity, timestamp, COALESCE(hostname, ''), COALESCE(appname, ''),
		       COALESCE(procid, ''), COALESCE(msgid, ''), sdata, message
		FROM messages
		WHERE msgid = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`, msgid, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Message
	for rows.Next() {
		var m Message
		var sdata []byte
		if err := rows.Scan(&m.Facility, &m.Severity, &m.Timestamp, &m.Hostname, &m.Appname,
			&m.Procid, &m.Msgid, &sdata, &m.Message); err != nil {
			return nil, err
		}
		if len(sdata) > 0 {
			if err := json.Unmarshal(sdata, &m.Sdata); err != nil {
				return nil, err
			}
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
