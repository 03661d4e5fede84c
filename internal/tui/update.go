package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/duc19092005/cinesched/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case commands.ScheduleChangedMsg:
		// The view reads the store directly; only the cursor may need clamping.
		m.clampCursor()
		return m, m.notifier.Wait()

	case commands.SavedMsg:
		m.saving = false
		m.store.MarkSaved(msg.Version)
		return m, m.setStatus(fmt.Sprintf("Saved %d showtime(s)", msg.Count))

	case commands.ErrMsg:
		m.saving = false
		m.logger.Error("command failed", "error", msg.Err)
		return m, m.setError(fmt.Sprintf("Error: %v", msg.Err))

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusError = false
		}
		return m, nil
	}

	if m.mode == ModePrompt {
		var cmd tea.Cmd
		m.prompt, cmd = m.prompt.Update(msg)
		return m, cmd
	}
	return m, nil
}
