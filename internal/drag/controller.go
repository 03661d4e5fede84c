// Package drag implements the pointer gesture state machine of the timeline:
// placing a new movie, moving or resizing a showtime, and dropping one on the trash.
//
// The controller never fails. An invalid placement shows up as an invalid
// ghost and the drop is discarded without touching the store.
package drag

import (
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/duc19092005/cinesched/internal/schedule"
	"github.com/duc19092005/cinesched/internal/timeline"
)

const (
	// DefaultCleaningBuffer is added after every new showtime.
	DefaultCleaningBuffer = 20 * time.Minute
	// DefaultPrice is the price of a newly placed showtime.
	DefaultPrice = 100
	// DefaultMinResizeHeight is the smallest height in pixels a resize can produce.
	DefaultMinResizeHeight = 30
)

// State is the gesture currently in progress.
type State int

const (
	Idle State = iota
	DraggingNew
	DraggingExisting
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DraggingNew:
		return "dragging-new"
	case DraggingExisting:
		return "dragging-existing"
	case Resizing:
		return "resizing"
	default:
		return "unknown"
	}
}

// Ghost is the preview of where a gesture would land.
type Ghost struct {
	AuditoriumID string
	Start        time.Time
	End          time.Time
	Top          float64
	Height       float64
	Format       string
	Valid        bool
}

// Store is the schedule the controller reads from and mutates.
type Store interface {
	Slots(auditoriumID string) []schedule.Slot
	AddSlot(auditoriumID string, slot schedule.Slot)
	UpdateSlot(auditoriumID, slotID string, patch schedule.SlotPatch)
	DeleteSlot(auditoriumID, slotID string)
	MoveSlot(fromID, toID string, updated schedule.Slot)
}

// Catalog resolves movie and auditorium ids.
type Catalog interface {
	Movie(id string) (schedule.Movie, bool)
	Auditorium(id string) (schedule.Auditorium, bool)
}

// Options configures a Controller.
type Options struct {
	Geometry        timeline.Geometry
	CleaningBuffer  time.Duration
	DefaultPrice    float64
	MinResizeHeight float64
	NewID           func() string
	Logger          hclog.Logger
}

// DefaultOptions returns the standard timeline behaviour.
func DefaultOptions() Options {
	return Options{
		Geometry:        timeline.Default(),
		CleaningBuffer:  DefaultCleaningBuffer,
		DefaultPrice:    DefaultPrice,
		MinResizeHeight: DefaultMinResizeHeight,
		NewID:           uuid.NewString,
		Logger:          hclog.NewNullLogger(),
	}
}

type resizeState struct {
	auditoriumID  string
	slotID        string
	initialY      float64
	initialHeight float64
	fixedStart    time.Time
}

// Controller tracks one gesture at a time. It is not safe for concurrent use;
// all calls are expected from the UI event loop.
type Controller struct {
	store   Store
	catalog Catalog
	opts    Options
	logger  hclog.Logger

	date  time.Time
	state State

	// DraggingNew
	movie schedule.Movie

	// DraggingExisting
	origAuditorium string
	slot           schedule.Slot
	pointerOffset  float64

	// Resizing
	resize resizeState

	ghost    Ghost
	hasGhost bool
}

// New creates an idle controller. Zero option fields take their defaults.
func New(store Store, catalog Catalog, opts Options) *Controller {
	def := DefaultOptions()
	if opts.Geometry == (timeline.Geometry{}) {
		opts.Geometry = def.Geometry
	}
	if opts.NewID == nil {
		opts.NewID = def.NewID
	}
	if opts.Logger == nil {
		opts.Logger = def.Logger
	}
	if opts.MinResizeHeight <= 0 {
		opts.MinResizeHeight = def.MinResizeHeight
	}
	now := time.Now()
	return &Controller{
		store:   store,
		catalog: catalog,
		opts:    opts,
		logger:  opts.Logger.Named("drag"),
		date:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
	}
}

// SetDate sets the day that pointer offsets are anchored to.
func (c *Controller) SetDate(date time.Time) {
	c.date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// Date returns the selected day.
func (c *Controller) Date() time.Time {
	return c.date
}

// Geometry returns the geometry used for conversions.
func (c *Controller) Geometry() timeline.Geometry {
	return c.opts.Geometry
}

// State returns the gesture in progress.
func (c *Controller) State() State {
	return c.state
}

// Ghost returns the current preview, if any.
func (c *Controller) Ghost() (Ghost, bool) {
	return c.ghost, c.hasGhost
}

// DraggedSlot returns the slot being moved or resized.
func (c *Controller) DraggedSlot() (auditoriumID, slotID string, ok bool) {
	switch c.state {
	case DraggingExisting:
		return c.origAuditorium, c.slot.ID, true
	case Resizing:
		return c.resize.auditoriumID, c.resize.slotID, true
	}
	return "", "", false
}

// DraggedMovie returns the movie being placed.
func (c *Controller) DraggedMovie() (schedule.Movie, bool) {
	return c.movie, c.state == DraggingNew
}

// Begin starts the gesture described by payload.
func (c *Controller) Begin(p Payload, pointerOffset float64) bool {
	if err := p.Validate(); err != nil {
		c.logger.Debug("rejected payload", "error", err)
		return false
	}
	switch p.Kind {
	case KindNewMovie:
		return c.BeginDragNew(p.MovieID)
	case KindExistingSlot:
		return c.BeginDragExisting(p.AuditoriumID, p.SlotID, pointerOffset)
	}
	return false
}

// BeginDragNew starts placing a catalog movie.
func (c *Controller) BeginDragNew(movieID string) bool {
	movie, ok := c.catalog.Movie(movieID)
	if !ok {
		c.logger.Debug("unknown movie", "movie", movieID)
		return false
	}
	c.reset()
	c.state = DraggingNew
	c.movie = movie
	c.logger.Debug("drag started", "state", c.state, "movie", movieID)
	return true
}

// BeginDragExisting starts moving a scheduled slot. pointerOffset is the
// distance in pixels between the slot's top and the grab point.
func (c *Controller) BeginDragExisting(auditoriumID, slotID string, pointerOffset float64) bool {
	slot, ok := c.findIn(auditoriumID, slotID)
	if !ok {
		c.logger.Debug("unknown slot", "auditorium", auditoriumID, "slot", slotID)
		return false
	}
	c.reset()
	c.state = DraggingExisting
	c.origAuditorium = auditoriumID
	c.slot = slot
	c.pointerOffset = pointerOffset
	c.logger.Debug("drag started", "state", c.state, "auditorium", auditoriumID, "slot", slotID)
	return true
}

// PointerMove updates the ghost for a pointer at vertical offset y over auditoriumID.
func (c *Controller) PointerMove(auditoriumID string, y float64) (Ghost, bool) {
	switch c.state {
	case DraggingNew, DraggingExisting:
	default:
		return Ghost{}, false
	}

	g := c.opts.Geometry
	if c.state == DraggingExisting {
		y -= c.pointerOffset
	}
	start := g.TimeFromPixels(y, c.date)

	var (
		duration  time.Duration
		format    string
		excludeID string
	)
	aud, audOK := c.catalog.Auditorium(auditoriumID)
	if c.state == DraggingNew {
		duration = time.Duration(c.movie.DurationMinutes)*time.Minute + c.opts.CleaningBuffer
		format = schedule.PickFormat(c.movie, aud)
	} else {
		duration = c.slot.Duration()
		format = c.slot.Format
		excludeID = c.slot.ID
	}
	end := start.Add(duration)

	collides := schedule.Collides(start, end, c.store.Slots(auditoriumID), excludeID)
	valid := audOK && !collides && format != "" && aud.SupportsFormat(format)

	c.ghost = Ghost{
		AuditoriumID: auditoriumID,
		Start:        start,
		End:          end,
		Top:          g.PixelsFromTimeOn(start, c.date),
		Height:       g.PixelsForDuration(duration),
		Format:       format,
		Valid:        valid,
	}
	c.hasGhost = true
	return c.ghost, true
}

// Drop ends a drag over auditoriumID. It reports whether the store changed.
func (c *Controller) Drop(auditoriumID string) bool {
	defer c.reset()

	if c.state != DraggingNew && c.state != DraggingExisting {
		return false
	}
	if !c.hasGhost || !c.ghost.Valid || c.ghost.AuditoriumID != auditoriumID {
		c.logger.Debug("drop rejected", "state", c.state, "auditorium", auditoriumID, "ghost", c.hasGhost, "valid", c.ghost.Valid)
		return false
	}

	if c.state == DraggingNew {
		slot := schedule.Slot{
			ID:      c.opts.NewID(),
			MovieID: c.movie.ID,
			Format:  c.ghost.Format,
			Start:   c.ghost.Start,
			End:     c.ghost.End,
			Price:   c.opts.DefaultPrice,
		}
		c.store.AddSlot(auditoriumID, slot)
		c.logger.Debug("slot added", "auditorium", auditoriumID, "slot", slot.ID,
			"start", slot.Start.Format("15:04"), "end", slot.End.Format("15:04"))
		return true
	}

	updated := c.slot
	updated.Start = c.ghost.Start
	updated.End = c.ghost.End
	c.store.MoveSlot(c.origAuditorium, auditoriumID, updated)
	c.logger.Debug("slot moved", "from", c.origAuditorium, "to", auditoriumID, "slot", updated.ID,
		"start", updated.Start.Format("15:04"))
	return true
}

// DropTrash deletes the slot being dragged. Other gestures are cancelled.
func (c *Controller) DropTrash() bool {
	defer c.reset()

	if c.state != DraggingExisting {
		return false
	}
	c.store.DeleteSlot(c.origAuditorium, c.slot.ID)
	c.logger.Debug("slot deleted", "auditorium", c.origAuditorium, "slot", c.slot.ID)
	return true
}

// BeginResize starts dragging the bottom edge of a slot from offset y.
func (c *Controller) BeginResize(auditoriumID, slotID string, y float64) bool {
	slot, ok := c.findIn(auditoriumID, slotID)
	if !ok {
		return false
	}
	c.reset()
	c.state = Resizing
	c.resize = resizeState{
		auditoriumID:  auditoriumID,
		slotID:        slotID,
		initialY:      y,
		initialHeight: c.opts.Geometry.PixelsForDuration(slot.Duration()),
		fixedStart:    slot.Start,
	}
	c.logger.Debug("resize started", "auditorium", auditoriumID, "slot", slotID)
	return true
}

// ResizeMove updates the resize preview for a pointer at offset y.
func (c *Controller) ResizeMove(y float64) (Ghost, bool) {
	if c.state != Resizing {
		return Ghost{}, false
	}
	r := c.resize
	g := c.opts.Geometry

	height := max(c.opts.MinResizeHeight, r.initialHeight+(y-r.initialY))
	end := r.fixedStart.Add(g.DurationFromPixels(height).Round(time.Minute))
	slot, _ := c.findIn(r.auditoriumID, r.slotID)

	c.ghost = Ghost{
		AuditoriumID: r.auditoriumID,
		Start:        r.fixedStart,
		End:          end,
		Top:          g.PixelsFromTimeOn(r.fixedStart, r.fixedStart),
		Height:       height,
		Format:       slot.Format,
		Valid:        !schedule.Collides(r.fixedStart, end, c.store.Slots(r.auditoriumID), r.slotID),
	}
	c.hasGhost = true
	return c.ghost, true
}

// ResizeEnd commits the resize at offset y. A result overlapping a
// neighbouring slot is discarded. It reports whether the store changed.
func (c *Controller) ResizeEnd(y float64) bool {
	if c.state != Resizing {
		return false
	}
	ghost, _ := c.ResizeMove(y)
	r := c.resize
	c.reset()

	if !ghost.Valid {
		c.logger.Debug("resize rejected", "slot", r.slotID, "end", ghost.End.Format("15:04"))
		return false
	}
	end := ghost.End
	c.store.UpdateSlot(r.auditoriumID, r.slotID, schedule.SlotPatch{End: &end})
	c.logger.Debug("slot resized", "auditorium", r.auditoriumID, "slot", r.slotID, "end", end.Format("15:04"))
	return true
}

// Cancel abandons any gesture without touching the store.
func (c *Controller) Cancel() {
	if c.state != Idle {
		c.logger.Debug("gesture cancelled", "state", c.state)
	}
	c.reset()
}

// ClearGhost hides the preview while keeping the gesture, e.g. when the
// pointer leaves every column.
func (c *Controller) ClearGhost() {
	c.ghost = Ghost{}
	c.hasGhost = false
}

func (c *Controller) reset() {
	c.state = Idle
	c.movie = schedule.Movie{}
	c.origAuditorium = ""
	c.slot = schedule.Slot{}
	c.pointerOffset = 0
	c.resize = resizeState{}
	c.ClearGhost()
}

func (c *Controller) findIn(auditoriumID, slotID string) (schedule.Slot, bool) {
	for _, s := range c.store.Slots(auditoriumID) {
		if s.ID == slotID {
			return s, true
		}
	}
	return schedule.Slot{}, false
}
