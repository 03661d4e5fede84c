package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS auditoriums (
			cinema_id     TEXT NOT NULL,
			auditorium_id TEXT NOT NULL,
			position      INTEGER NOT NULL,
			PRIMARY KEY (cinema_id, auditorium_id)
		);

		CREATE TABLE IF NOT EXISTS showtimes (
			cinema_id     TEXT NOT NULL,
			id            TEXT NOT NULL,
			auditorium_id TEXT NOT NULL,
			position      INTEGER NOT NULL,
			movie_id      TEXT NOT NULL,
			format        TEXT NOT NULL,
			start_date    DATE NOT NULL,
			start_at      DATETIME NOT NULL,
			end_at        DATETIME NOT NULL,
			price         REAL NOT NULL DEFAULT 0 CHECK(price >= 0),
			PRIMARY KEY (cinema_id, id),
			CHECK(end_at > start_at)
		);

		CREATE INDEX IF NOT EXISTS idx_showtimes_date ON showtimes(cinema_id, start_date);
		CREATE INDEX IF NOT EXISTS idx_showtimes_auditorium ON showtimes(cinema_id, auditorium_id, position);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating showtime tables: %w", err)
	}

	return nil
}
