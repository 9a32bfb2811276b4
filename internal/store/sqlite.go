package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS wrong_words (
    learner_id TEXT NOT NULL,
    word_id    TEXT NOT NULL,
    PRIMARY KEY (learner_id, word_id)
);

CREATE TABLE IF NOT EXISTS seen_words (
    learner_id TEXT NOT NULL,
    day        TEXT NOT NULL,
    word_id    TEXT NOT NULL,
    PRIMARY KEY (learner_id, day, word_id)
);

CREATE TABLE IF NOT EXISTS daily_stats (
    learner_id TEXT NOT NULL,
    day        TEXT NOT NULL,
    attempted  INTEGER NOT NULL DEFAULT 0,
    correct    INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (learner_id, day)
);

CREATE TABLE IF NOT EXISTS new_words (
    learner_id TEXT NOT NULL,
    word_id    TEXT NOT NULL,
    PRIMARY KEY (learner_id, word_id)
);

CREATE TABLE IF NOT EXISTS category_overrides (
    word_id  TEXT PRIMARY KEY,
    category TEXT NOT NULL
);
`

// SQLiteStore implements HistoryStore on a sqlite database. All state
// is partitioned by learner id; there are no cross-learner rows apart
// from the shared category overrides.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ============================================================================
// Wrong set
// ============================================================================

func (s *SQLiteStore) WrongSet(learnerID string) (map[string]bool, error) {
	return s.querySet("SELECT word_id FROM wrong_words WHERE learner_id = ?", learnerID)
}

func (s *SQLiteStore) AddWrong(learnerID, wordID string) error {
	_, err := s.db.Exec(
		"INSERT OR IGNORE INTO wrong_words (learner_id, word_id) VALUES (?, ?)",
		learnerID, wordID,
	)
	return err
}

func (s *SQLiteStore) RemoveWrong(learnerID, wordID string) error {
	_, err := s.db.Exec(
		"DELETE FROM wrong_words WHERE learner_id = ? AND word_id = ?",
		learnerID, wordID,
	)
	return err
}

// ============================================================================
// Seen log
// ============================================================================

func (s *SQLiteStore) SeenOn(learnerID, day string) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT word_id FROM seen_words WHERE learner_id = ? AND day = ?",
		learnerID, day,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) SeenByDay(learnerID string, days []string) (map[string][]string, error) {
	out := make(map[string][]string, len(days))
	for _, day := range days {
		ids, err := s.SeenOn(learnerID, day)
		if err != nil {
			return nil, err
		}
		if len(ids) > 0 {
			out[day] = ids
		}
	}
	return out, nil
}

func (s *SQLiteStore) AppendSeen(learnerID, day string, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, id := range ids {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO seen_words (learner_id, day, word_id) VALUES (?, ?, ?)",
			learnerID, day, id,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) PruneSeen(beforeDay string) error {
	_, err := s.db.Exec("DELETE FROM seen_words WHERE day < ?", beforeDay)
	return err
}

// ============================================================================
// Daily stats
// ============================================================================

func (s *SQLiteStore) StatsOn(learnerID, day string) (DayStats, error) {
	var st DayStats
	err := s.db.QueryRow(
		"SELECT attempted, correct FROM daily_stats WHERE learner_id = ? AND day = ?",
		learnerID, day,
	).Scan(&st.Attempted, &st.Correct)
	if err == sql.ErrNoRows {
		return DayStats{}, nil
	}
	if err != nil {
		return DayStats{}, err
	}
	return st, nil
}

func (s *SQLiteStore) StatsByDay(learnerID string, days []string) (map[string]DayStats, error) {
	out := make(map[string]DayStats, len(days))
	for _, day := range days {
		st, err := s.StatsOn(learnerID, day)
		if err != nil {
			return nil, err
		}
		if st.Attempted > 0 {
			out[day] = st
		}
	}
	return out, nil
}

func (s *SQLiteStore) AddAttempt(learnerID, day string, correct bool) error {
	inc := 0
	if correct {
		inc = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO daily_stats (learner_id, day, attempted, correct) VALUES (?, ?, 1, ?)
		ON CONFLICT (learner_id, day)
		DO UPDATE SET attempted = attempted + 1, correct = correct + excluded.correct
	`, learnerID, day, inc)
	return err
}

// ============================================================================
// New-word marker set
// ============================================================================

func (s *SQLiteStore) NewSet(learnerID string) (map[string]bool, error) {
	return s.querySet("SELECT word_id FROM new_words WHERE learner_id = ?", learnerID)
}

func (s *SQLiteStore) ReplaceNewSet(learnerID string, ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM new_words WHERE learner_id = ?", learnerID); err != nil {
		return err
	}
	for _, id := range ids {
		_, err := tx.Exec(
			"INSERT OR IGNORE INTO new_words (learner_id, word_id) VALUES (?, ?)",
			learnerID, id,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ============================================================================
// Category overrides
// ============================================================================

func (s *SQLiteStore) CategoryOverrides() (map[string]string, error) {
	rows, err := s.db.Query("SELECT word_id, category FROM category_overrides")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, cat string
		if err := rows.Scan(&id, &cat); err != nil {
			return nil, err
		}
		out[id] = cat
	}
	return out, rows.Err()
}

// SetCategoryOverride upserts an override; an empty category clears it.
func (s *SQLiteStore) SetCategoryOverride(wordID, category string) error {
	if category == "" {
		_, err := s.db.Exec("DELETE FROM category_overrides WHERE word_id = ?", wordID)
		return err
	}
	_, err := s.db.Exec(`
		INSERT INTO category_overrides (word_id, category) VALUES (?, ?)
		ON CONFLICT (word_id) DO UPDATE SET category = excluded.category
	`, wordID, category)
	return err
}

func (s *SQLiteStore) querySet(query, learnerID string) (map[string]bool, error) {
	rows, err := s.db.Query(query, learnerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}
