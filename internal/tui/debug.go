package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hashicorp/go-hclog"

	"github.com/duc19092005/cinesched/internal/drag"
)

// DebugLogPath is the fixed path for debug logs
const DebugLogPath = "cinesched-debug.log"

// OpenDebugLog returns a logger writing JSON lines to path when enabled,
// and a null logger otherwise. The returned func closes the log file.
func OpenDebugLog(enabled bool, path string) (hclog.Logger, func(), error) {
	if !enabled {
		return hclog.NewNullLogger(), func() {}, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating debug log: %w", err)
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "cinesched",
		Level:      hclog.Debug,
		Output:     f,
		JSONFormat: true,
	})
	logger.Debug("debug start", "log_file", path)

	return logger, func() {
		logger.Debug("debug end")
		_ = f.Close()
	}, nil
}

func logKeyPress(logger hclog.Logger, msg tea.KeyMsg, mode Mode) {
	if !logger.IsDebug() {
		return
	}
	logger.Debug("key press", "key", msg.String(), "mode", mode)
}

func logMouse(logger hclog.Logger, msg tea.MouseMsg, t Target) {
	if !logger.IsDebug() || msg.Action == tea.MouseActionMotion {
		return
	}
	logger.Debug("mouse", "event", msg.String(), "x", msg.X, "y", msg.Y,
		"zone", t.Zone, "column", t.Column, "row", t.Row)
}

func logGesture(logger hclog.Logger, c *drag.Controller, action string) {
	if !logger.IsDebug() {
		return
	}
	args := []any{"action", action, "state", c.State()}
	if g, ok := c.Ghost(); ok {
		args = append(args,
			"ghost_auditorium", g.AuditoriumID,
			"ghost_start", g.Start.Format(clockLayout),
			"ghost_end", g.End.Format(clockLayout),
			"ghost_valid", g.Valid,
		)
	}
	if aud, slot, ok := c.DraggedSlot(); ok {
		args = append(args, "auditorium", aud, "slot", slot)
	}
	logger.Debug("gesture", args...)
}
