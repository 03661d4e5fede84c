package schedule

import (
	"context"
	"time"
)

// Repository defines the storage interface for schedules.
type Repository interface {
	// SaveSchedule replaces the stored schedule of data.CinemaID with data.
	SaveSchedule(ctx context.Context, data *Data) error

	// LoadSchedule returns the stored schedule of a cinema.
	// A cinema with nothing stored yields an empty schedule, not an error.
	LoadSchedule(ctx context.Context, cinemaID string) (*Data, error)

	// ListSlotsByDate returns the slots of a cinema starting on date, grouped by auditorium.
	ListSlotsByDate(ctx context.Context, cinemaID string, date time.Time) ([]AuditoriumSchedule, error)

	// Close releases any resources held by the repository.
	Close() error
}
