// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/duc19092005/cinesched/internal/schedule"
)

// ScheduleChangedMsg is sent after the store published a new snapshot.
type ScheduleChangedMsg struct{}

// SavedMsg is sent when a snapshot was persisted.
type SavedMsg struct {
	Version uint64
	Count   int
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Notifier turns store notifications into messages for the event loop.
// Bursts of notifications collapse into a single pending message.
type Notifier struct {
	ch chan struct{}
}

// NewNotifier creates a Notifier.
func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Notify records a change without blocking.
func (n *Notifier) Notify(*schedule.Data) {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

// Wait returns a command that blocks until the next change.
func (n *Notifier) Wait() tea.Cmd {
	return func() tea.Msg {
		<-n.ch
		return ScheduleChangedMsg{}
	}
}

// Save persists snapshot, taken at version, through repo.
func Save(ctx context.Context, repo schedule.Repository, snapshot *schedule.Data, version uint64) tea.Cmd {
	return func() tea.Msg {
		if repo == nil {
			return ErrMsg{Err: fmt.Errorf("saving schedule: no repository")}
		}
		if err := repo.SaveSchedule(ctx, snapshot); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving schedule: %w", err)}
		}
		return SavedMsg{Version: version, Count: snapshot.Count()}
	}
}

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text, status string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: status}
	}
}

// ClearStatusAfter schedules a ClearStatusMsg.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
