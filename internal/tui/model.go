package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/duc19092005/cinesched/internal/catalog"
	"github.com/duc19092005/cinesched/internal/config"
	"github.com/duc19092005/cinesched/internal/dateutil"
	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/schedule"
	"github.com/duc19092005/cinesched/internal/store"
	"github.com/duc19092005/cinesched/internal/tui/commands"
	"github.com/duc19092005/cinesched/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDrag        // A ghost follows the cursor or pointer
	ModeResize      // The bottom edge of a showtime follows the cursor or pointer
	ModePrompt
)

func (m Mode) String() string {
	switch m {
	case ModeDrag:
		return "drag"
	case ModeResize:
		return "resize"
	case ModePrompt:
		return "prompt"
	}
	return "normal"
}

type focusArea int

const (
	focusGrid focusArea = iota
	focusSidebar
)

// Position is a cursor position in the grid.
type Position struct {
	Column int // index into the filtered auditoriums
	Row    int // absolute row, one snap interval each
}

const statusDuration = 3 * time.Second

// Model is the main TUI model.
type Model struct {
	// Dependencies
	ctx        context.Context
	repo       schedule.Repository
	config     *config.Config
	catalog    *catalog.Catalog
	store      *store.Store
	controller *drag.Controller
	logger     hclog.Logger
	now        func() time.Time

	// Theme, styles and components
	theme  *theme.Theme
	styles *Styles
	keys   keyMap
	help   help.Model
	prompt textinput.Model

	// Store notifications
	notifier    *commands.Notifier
	unsubscribe func()

	// State
	scale       rowScale
	date        time.Time
	format      string
	auditoriums []schedule.Auditorium
	mode        Mode
	focus       focusArea
	movieCursor int
	cursor      Position
	scroll      int
	pointerDown bool
	overTrash   bool
	saving      bool
	quitArmed   bool

	// Terminal dimensions and layout
	width  int
	height int
	layout Layout

	// Messages
	statusMsg   string
	statusError bool
	statusTime  time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the debug logger.
func WithLogger(logger hclog.Logger) ModelOption {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithContext sets the context used by storage commands.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithClock replaces time.Now, e.g. in tests.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// ControllerOptions builds the gesture controller options from the config.
func ControllerOptions(cfg *config.Config, logger hclog.Logger) drag.Options {
	opts := drag.DefaultOptions()
	opts.Geometry = cfg.Geometry()
	opts.CleaningBuffer = time.Duration(cfg.Timeline.CleaningMinutes) * time.Minute
	opts.DefaultPrice = cfg.Timeline.DefaultPrice
	opts.MinResizeHeight = cfg.Timeline.MinResizePixels
	if logger != nil {
		opts.Logger = logger
	}
	return opts
}

// New creates a new TUI model over st. repo may be nil, in which case
// saving reports an error.
func New(repo schedule.Repository, st *store.Store, cat *catalog.Catalog, cfg *config.Config, opts ...ModelOption) *Model {
	m := &Model{
		ctx:     context.Background(),
		repo:    repo,
		config:  cfg,
		catalog: cat,
		store:   st,
		logger:  hclog.NewNullLogger(),
		now:     time.Now,
		keys:    defaultKeyMap(),
		help:    help.New(),
		format:  catalog.FormatAll,
		mode:    ModeNormal,
		focus:   focusGrid,
	}
	for _, opt := range opts {
		opt(m)
	}

	// Load theme from config
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.DefaultName)
	}
	m.theme = t
	m.styles = NewStyles(t)
	m.help.Styles.ShortKey = m.styles.PromptStyle
	m.help.Styles.ShortDesc = m.styles.HelpStyle
	m.help.Styles.FullKey = m.styles.PromptStyle
	m.help.Styles.FullDesc = m.styles.HelpStyle

	ti := textinput.New()
	ti.Prompt = ": "
	ti.Placeholder = "tomorrow, 2025-03-14, /format IMAX, /save"
	ti.CharLimit = 64
	ti.PromptStyle = m.styles.PromptStyle
	m.prompt = ti

	m.controller = drag.New(st, cat, ControllerOptions(cfg, m.logger.Named("tui")))
	m.scale = newRowScale(cfg.Geometry())
	m.auditoriums = cat.FilterAuditoriums(m.format)

	m.notifier = commands.NewNotifier()
	m.unsubscribe = st.Subscribe(m.notifier.Notify)

	m.setDate(m.now())
	m.relayout()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return m.notifier.Wait()
}

// Close detaches the model from the store.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// RunWithDebug loads the schedule of the configured cinema and runs the
// TUI until the user quits. With debug set, events are logged to
// DebugLogPath.
func RunWithDebug(ctx context.Context, repo schedule.Repository, cat *catalog.Catalog, cfg *config.Config, debug bool) error {
	logger, closeLog, err := OpenDebugLog(debug, DebugLogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := store.Load(ctx, repo, cfg.Cinema.ID, cat.Auditoriums)
	if err != nil {
		return err
	}

	model := New(repo, st, cat, cfg, WithLogger(logger), WithContext(ctx))
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx))
	_, err = p.Run()
	return err
}

// relayout recomputes the layout after a size, filter or footer change.
func (m *Model) relayout() {
	m.layout = buildLayout(m.width, m.height, len(m.auditoriums), m.footerState().Height())
	m.clampCursor()
}

func (m *Model) clampCursor() {
	m.cursor.Column = max(0, min(m.cursor.Column, len(m.auditoriums)-1))
	m.cursor.Row = max(0, min(m.cursor.Row, m.scale.Rows()-1))
	m.movieCursor = max(0, min(m.movieCursor, len(m.catalog.Movies)-1))
	m.ensureVisible()
}

// ensureVisible scrolls so the cursor row is on screen.
func (m *Model) ensureVisible() {
	visible := m.layout.GridH
	if visible <= 0 {
		return
	}
	if m.cursor.Row < m.scroll {
		m.scroll = m.cursor.Row
	}
	if m.cursor.Row >= m.scroll+visible {
		m.scroll = m.cursor.Row - visible + 1
	}
	m.scroll = max(0, min(m.scroll, m.scale.Rows()-visible))
}

func (m *Model) moveCursor(dCol, dRow int) {
	m.cursor.Column += dCol
	m.cursor.Row += dRow
	m.clampCursor()
}

func (m *Model) scrollBy(rows int) {
	m.scroll = max(0, min(m.scroll+rows, m.scale.Rows()-m.layout.GridH))
}

// setDate switches the displayed day and puts the cursor on its first showtime.
func (m *Model) setDate(d time.Time) {
	m.date = dateutil.TruncateToDay(d)
	m.controller.SetDate(m.date)

	first := -1
	for _, a := range m.auditoriums {
		for _, s := range m.store.SlotsOn(a.ID, m.date) {
			row := m.scale.RowAt(m.scale.geometry.PixelsFromTimeOn(s.Start, m.date))
			if first < 0 || row < first {
				first = row
			}
		}
	}
	if first >= 0 {
		m.cursor.Row = first
		m.scroll = first
	}
	m.clampCursor()
}

func (m *Model) gotoDate(expr string) tea.Cmd {
	d, err := dateutil.ParseRelativeDate(expr, m.now())
	if err != nil {
		return m.setError(err.Error())
	}
	m.setDate(d)
	return nil
}

// cycleFormat advances the auditorium format filter.
func (m *Model) cycleFormat() {
	formats := m.catalog.Formats()
	next := formats[0]
	for i, f := range formats {
		if f == m.format {
			next = formats[(i+1)%len(formats)]
			break
		}
	}
	m.applyFormat(next)
}

func (m *Model) setFormatByName(name string) tea.Cmd {
	if name == "" {
		name = catalog.FormatAll
	}
	for _, f := range m.catalog.Formats() {
		if strings.EqualFold(f, name) {
			m.applyFormat(f)
			return nil
		}
	}
	return m.setError(fmt.Sprintf("Unknown format %s", name))
}

func (m *Model) applyFormat(format string) {
	m.format = format
	m.auditoriums = m.catalog.FilterAuditoriums(format)
	m.relayout()
}

// currentAuditorium returns the auditorium under the cursor.
func (m Model) currentAuditorium() (schedule.Auditorium, bool) {
	if m.cursor.Column < 0 || m.cursor.Column >= len(m.auditoriums) {
		return schedule.Auditorium{}, false
	}
	return m.auditoriums[m.cursor.Column], true
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusError = false
	m.statusTime = m.now().Add(statusDuration)
	return commands.ClearStatusAfter(statusDuration)
}

func (m *Model) setError(msg string) tea.Cmd {
	cmd := m.setStatus(msg)
	m.statusError = true
	return cmd
}
