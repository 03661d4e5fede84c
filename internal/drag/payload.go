package drag

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies what is being dragged.
type Kind string

const (
	// KindNewMovie drags a movie from the catalog to create a showtime.
	KindNewMovie Kind = "newMovie"
	// KindExistingSlot drags a showtime that is already scheduled.
	KindExistingSlot Kind = "existingSlot"
)

// Legacy wire spellings still accepted by ParsePayload.
const (
	legacyMovieSource = "movie_source"
	legacySlot        = "SLOT"
)

// Payload errors.
var (
	ErrMalformedPayload = errors.New("malformed drag payload")
	ErrUnknownKind      = errors.New("unknown drag payload kind")
	ErrMissingField     = errors.New("drag payload field missing")
)

// Payload is the data carried by a drag gesture.
type Payload struct {
	Kind         Kind   `json:"kind"`
	MovieID      string `json:"movieId,omitempty"`
	AuditoriumID string `json:"auditoriumId,omitempty"`
	SlotID       string `json:"slotId,omitempty"`
}

// NewMoviePayload returns the payload for dragging a catalog movie.
func NewMoviePayload(movieID string) Payload {
	return Payload{Kind: KindNewMovie, MovieID: movieID}
}

// ExistingSlotPayload returns the payload for dragging a scheduled slot.
func ExistingSlotPayload(auditoriumID, slotID string) Payload {
	return Payload{Kind: KindExistingSlot, AuditoriumID: auditoriumID, SlotID: slotID}
}

type wirePayload struct {
	Payload
	Type string `json:"type"`
}

// ParsePayload decodes and validates a JSON drag payload.
func ParsePayload(data []byte) (Payload, error) {
	var w wirePayload
	if err := json.Unmarshal(data, &w); err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	p := w.Payload
	if p.Kind == "" {
		switch w.Type {
		case legacyMovieSource:
			p.Kind = KindNewMovie
		case legacySlot:
			p.Kind = KindExistingSlot
		default:
			return Payload{}, fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
		}
	}
	if err := p.Validate(); err != nil {
		return Payload{}, err
	}
	return p, nil
}

// Validate checks that the fields required by the kind are present.
func (p Payload) Validate() error {
	switch p.Kind {
	case KindNewMovie:
		if p.MovieID == "" {
			return fmt.Errorf("%w: movieId", ErrMissingField)
		}
	case KindExistingSlot:
		if p.AuditoriumID == "" {
			return fmt.Errorf("%w: auditoriumId", ErrMissingField)
		}
		if p.SlotID == "" {
			return fmt.Errorf("%w: slotId", ErrMissingField)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, p.Kind)
	}
	return nil
}

// Marshal encodes the payload in its canonical JSON form.
func (p Payload) Marshal() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(p)
}
