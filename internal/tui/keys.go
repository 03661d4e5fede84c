package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/duc19092005/cinesched/internal/drag"
	"github.com/duc19092005/cinesched/internal/tui/input"
)

// keyMap holds the key bindings of every mode.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
	Focus   key.Binding
	Pick    key.Binding
	Drop    key.Binding
	Resize  key.Binding
	Delete  key.Binding
	Cancel  key.Binding
	Format  key.Binding
	Prompt  key.Binding
	Undo    key.Binding
	Save    key.Binding
	Yank    key.Binding
	Help    key.Binding
	Quit    key.Binding
	Force   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		PrevDay: key.NewBinding(key.WithKeys("[", "p"), key.WithHelp("[", "prev day")),
		NextDay: key.NewBinding(key.WithKeys("]", "n"), key.WithHelp("]", "next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Focus:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "movies/grid")),
		Pick:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "pick up")),
		Drop:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "drop")),
		Resize:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resize")),
		Delete:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "trash")),
		Cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		Format:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "format")),
		Prompt:  key.NewBinding(key.WithKeys(":", "g"), key.WithHelp(":", "command")),
		Undo:    key.NewBinding(key.WithKeys("u", "ctrl+z"), key.WithHelp("u", "undo")),
		Save:    key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save")),
		Yank:    key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy day")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		Force:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// bindings adapts a binding list to help.KeyMap.
type bindings []key.Binding

func (b bindings) ShortHelp() []key.Binding { return b }

func (b bindings) FullHelp() [][]key.Binding {
	const perColumn = 4
	var cols [][]key.Binding
	for i := 0; i < len(b); i += perColumn {
		cols = append(cols, b[i:min(i+perColumn, len(b))])
	}
	return cols
}

// helpBindings returns the bindings relevant to the current mode.
func (m Model) helpBindings() bindings {
	k := m.keys
	switch m.mode {
	case ModeDrag:
		return bindings{k.Up, k.Down, k.Left, k.Right, k.Drop, k.Delete, k.Cancel}
	case ModeResize:
		return bindings{k.Up, k.Down, k.Drop, k.Cancel}
	case ModePrompt:
		return bindings{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),
			key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "complete")),
			k.Cancel,
		}
	}
	return bindings{
		k.Up, k.Down, k.Left, k.Right, k.Focus, k.Pick, k.Resize, k.Delete,
		k.PrevDay, k.NextDay, k.Today, k.Format, k.Prompt, k.Undo, k.Save, k.Yank,
		k.Help, k.Quit,
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	logKeyPress(m.logger, msg, m.mode)

	// Global keys (work in all modes)
	if key.Matches(msg, m.keys.Force) {
		return m, tea.Quit
	}

	switch m.mode {
	case ModePrompt:
		return m.handlePromptKeys(msg)
	case ModeDrag:
		return m.handleDragKeys(msg)
	case ModeResize:
		return m.handleResizeKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys when no gesture is in progress.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	if !key.Matches(msg, k.Quit) {
		m.quitArmed = false
	}

	switch {
	case key.Matches(msg, k.Quit):
		if m.store.HasChanges() && !m.quitArmed {
			m.quitArmed = true
			return m, m.setError("Unsaved changes: press q again to quit, s to save")
		}
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()

	case key.Matches(msg, k.Focus):
		if m.focus == focusGrid {
			m.focus = focusSidebar
		} else {
			m.focus = focusGrid
		}

	case key.Matches(msg, k.Up):
		if m.focus == focusSidebar {
			m.movieCursor = max(0, m.movieCursor-1)
		} else {
			m.moveCursor(0, -1)
		}
	case key.Matches(msg, k.Down):
		if m.focus == focusSidebar {
			m.movieCursor = min(len(m.catalog.Movies)-1, m.movieCursor+1)
		} else {
			m.moveCursor(0, 1)
		}
	case key.Matches(msg, k.Left):
		if m.focus == focusGrid && m.cursor.Column == 0 {
			m.focus = focusSidebar
		} else if m.focus == focusGrid {
			m.moveCursor(-1, 0)
		}
	case key.Matches(msg, k.Right):
		if m.focus == focusSidebar {
			m.focus = focusGrid
		} else {
			m.moveCursor(1, 0)
		}

	case key.Matches(msg, k.PrevDay):
		m.setDate(m.date.AddDate(0, 0, -1))
	case key.Matches(msg, k.NextDay):
		m.setDate(m.date.AddDate(0, 0, 1))
	case key.Matches(msg, k.Today):
		m.setDate(m.now())

	case key.Matches(msg, k.Format):
		m.cycleFormat()

	case key.Matches(msg, k.Prompt):
		m.mode = ModePrompt
		m.prompt.SetValue("")
		m.relayout()
		return m, m.prompt.Focus()

	case key.Matches(msg, k.Undo):
		return m, m.undo()
	case key.Matches(msg, k.Save):
		return m.save()
	case key.Matches(msg, k.Yank):
		return m, m.yank()

	case key.Matches(msg, k.Pick):
		if m.focus == focusSidebar {
			return m, m.beginNewDrag()
		}
		return m, m.beginExistingDrag()

	case key.Matches(msg, k.Resize):
		return m, m.beginResize()

	case key.Matches(msg, k.Delete):
		return m, m.trashUnderCursor()
	}

	return m, nil
}

// handleDragKeys moves the ghost with the cursor.
func (m Model) handleDragKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Cancel):
		return m, m.cancelGesture()

	case key.Matches(msg, k.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, k.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, k.Left):
		if m.cursor.Column == 0 {
			m.hoverTrash()
			return m, nil
		}
		if !m.overTrash {
			m.moveCursor(-1, 0)
		}
	case key.Matches(msg, k.Right):
		if m.overTrash {
			m.overTrash = false
		} else {
			m.moveCursor(1, 0)
		}

	case key.Matches(msg, k.Drop):
		if m.overTrash {
			return m, m.dropTrash()
		}
		return m, m.drop()

	case key.Matches(msg, k.Delete):
		return m, m.dropTrash()

	default:
		return m, nil
	}

	if !m.overTrash {
		m.pointerMove()
	}
	return m, nil
}

// handleResizeKeys moves the bottom edge of a showtime with the cursor.
func (m Model) handleResizeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Cancel):
		return m, m.cancelGesture()
	case key.Matches(msg, k.Up):
		m.moveCursor(0, -1)
	case key.Matches(msg, k.Down):
		m.moveCursor(0, 1)
	case key.Matches(msg, k.Drop):
		return m, m.resizeEnd()
	default:
		return m, nil
	}
	m.controller.ResizeMove(m.scale.Offset(m.cursor.Row))
	logGesture(m.logger, m.controller, "resize move")
	return m, nil
}

// handlePromptKeys handles the command prompt.
func (m Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePrompt()
		return m, nil
	case "tab":
		if completed, ok := input.Autocomplete(m.prompt.Value(), input.Commands); ok {
			m.prompt.SetValue(completed)
			m.prompt.CursorEnd()
		}
		return m, nil
	case "enter":
		line := m.prompt.Value()
		m.closePrompt()
		return m.runPrompt(input.Parse(line))
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m *Model) closePrompt() {
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.mode = ModeNormal
	m.relayout()
}

// runPrompt executes a parsed prompt line.
func (m Model) runPrompt(c input.Command) (tea.Model, tea.Cmd) {
	switch c.Name {
	case "":
		return m, nil
	case input.CmdDate:
		return m, m.gotoDate(c.Arg)
	case input.CmdFormat:
		return m, m.setFormatByName(c.Arg)
	case input.CmdSave:
		return m.save()
	case input.CmdUndo:
		return m, m.undo()
	case input.CmdYank:
		return m, m.yank()
	}
	return m, m.setError(fmt.Sprintf("Unknown command %s", c.Name))
}

// gestureLabel names the gesture for the status line.
func gestureLabel(s drag.State) string {
	switch s {
	case drag.DraggingNew:
		return "Placing"
	case drag.DraggingExisting:
		return "Moving"
	case drag.Resizing:
		return "Resizing"
	}
	return ""
}
