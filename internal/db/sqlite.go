// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/duc19092005/cinesched/internal/schedule"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// SQLite implements schedule.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// SaveSchedule replaces everything stored for data.CinemaID in one transaction.
// Returns schedule.ErrSlotOverlap if two slots of one auditorium overlap.
func (s *SQLite) SaveSchedule(ctx context.Context, data *schedule.Data) error {
	if data == nil {
		return nil
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM showtimes WHERE cinema_id = ?`, data.CinemaID); err != nil {
		return fmt.Errorf("clearing showtimes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM auditoriums WHERE cinema_id = ?`, data.CinemaID); err != nil {
		return fmt.Errorf("clearing auditoriums: %w", err)
	}

	audStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO auditoriums (cinema_id, auditorium_id, position) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing auditorium insert: %w", err)
	}
	defer func() { _ = audStmt.Close() }()

	slotStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO showtimes (
			cinema_id, id, auditorium_id, position, movie_id, format,
			start_date, start_at, end_at, price
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing showtime insert: %w", err)
	}
	defer func() { _ = slotStmt.Close() }()

	for i, a := range data.Auditoriums {
		if _, err := audStmt.ExecContext(ctx, data.CinemaID, a.AuditoriumID, i); err != nil {
			return fmt.Errorf("inserting auditorium %s: %w", a.AuditoriumID, err)
		}
		for j, sl := range a.Slots {
			_, err := slotStmt.ExecContext(ctx,
				data.CinemaID,
				sl.ID,
				a.AuditoriumID,
				j,
				sl.MovieID,
				sl.Format,
				sl.Start.Format(dateLayout),
				sl.Start.Format(dateTimeLayout),
				sl.End.Format(dateTimeLayout),
				sl.Price,
			)
			if err != nil {
				return fmt.Errorf("inserting showtime %s: %w", sl.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

// LoadSchedule returns the stored schedule of a cinema, auditoriums in saved order.
func (s *SQLite) LoadSchedule(ctx context.Context, cinemaID string) (*schedule.Data, error) {
	data := &schedule.Data{CinemaID: cinemaID}

	rows, err := s.db.QueryContext(ctx, `
		SELECT auditorium_id FROM auditoriums WHERE cinema_id = ? ORDER BY position
	`, cinemaID)
	if err != nil {
		return nil, fmt.Errorf("querying auditoriums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	index := make(map[string]int)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning auditorium: %w", err)
		}
		index[id] = len(data.Auditoriums)
		data.Auditoriums = append(data.Auditoriums, schedule.AuditoriumSchedule{AuditoriumID: id})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating auditoriums: %w", err)
	}

	slots, err := s.querySlots(ctx, `
		SELECT auditorium_id, id, movie_id, format, start_at, end_at, price
		FROM showtimes
		WHERE cinema_id = ?
		ORDER BY auditorium_id, position
	`, cinemaID)
	if err != nil {
		return nil, err
	}

	for _, as := range slots {
		i, ok := index[as.AuditoriumID]
		if !ok {
			i = len(data.Auditoriums)
			index[as.AuditoriumID] = i
			data.Auditoriums = append(data.Auditoriums, schedule.AuditoriumSchedule{AuditoriumID: as.AuditoriumID})
		}
		data.Auditoriums[i].Slots = append(data.Auditoriums[i].Slots, as.Slots...)
	}

	return data, nil
}

// ListSlotsByDate returns the showtimes of a cinema starting on date, grouped by auditorium
// and ordered by start time.
func (s *SQLite) ListSlotsByDate(ctx context.Context, cinemaID string, date time.Time) ([]schedule.AuditoriumSchedule, error) {
	return s.querySlots(ctx, `
		SELECT s.auditorium_id, s.id, s.movie_id, s.format, s.start_at, s.end_at, s.price
		FROM showtimes s
		LEFT JOIN auditoriums a ON a.cinema_id = s.cinema_id AND a.auditorium_id = s.auditorium_id
		WHERE s.cinema_id = ? AND s.start_date = ?
		ORDER BY a.position, s.auditorium_id, s.start_at
	`, cinemaID, date.Format(dateLayout))
}

// querySlots runs a showtime query and groups consecutive rows by auditorium.
func (s *SQLite) querySlots(ctx context.Context, query string, args ...any) ([]schedule.AuditoriumSchedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying showtimes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []schedule.AuditoriumSchedule
	for rows.Next() {
		var (
			audID   string
			sl      schedule.Slot
			startAt string
			endAt   string
		)
		if err := rows.Scan(&audID, &sl.ID, &sl.MovieID, &sl.Format, &startAt, &endAt, &sl.Price); err != nil {
			return nil, fmt.Errorf("scanning showtime: %w", err)
		}
		if sl.Start, err = parseDateTime(startAt); err != nil {
			return nil, fmt.Errorf("parsing start of %s: %w", sl.ID, err)
		}
		if sl.End, err = parseDateTime(endAt); err != nil {
			return nil, fmt.Errorf("parsing end of %s: %w", sl.ID, err)
		}

		if n := len(result); n == 0 || result[n-1].AuditoriumID != audID {
			result = append(result, schedule.AuditoriumSchedule{AuditoriumID: audID})
		}
		last := &result[len(result)-1]
		last.Slots = append(last.Slots, sl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating showtimes: %w", err)
	}

	return result, nil
}

// parseDateTime parses a stored wall-clock time in the local timezone.
// The driver may hand DATETIME columns back in RFC3339 form.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dateTimeLayout, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.Local), nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
