package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/duc19092005/cinesched/internal/config"
	"github.com/duc19092005/cinesched/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Show the configuration and optionally edit it field by field.

A missing config file is created with the default values first.
Press enter at a prompt to keep the current value.

Example:
  cinesched config`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				path = config.DefaultConfigPath()
			}
			return editConfig(cmd.InOrStdin(), a.out, path)
		},
	}
	cmd.Flags().StringVar(&path, "file", "", "Config file to edit (default ~/.config/cinesched/config.toml)")
	return cmd
}

// editConfig shows the config at path and walks through its fields.
func editConfig(in io.Reader, out io.Writer, path string) error {
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", path)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s with default values\n\n", path)
	}

	text, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "%s\n", formatHeader("Current configuration"))
	_, _ = fmt.Fprintf(out, "%s\n", text)

	p := prompter{in: bufio.NewReader(in), out: out}
	if !p.confirm("Edit the configuration?") {
		return nil
	}

	tl := &cfg.Timeline
	steps := []func() error{
		func() error { return askInt(p, "Timeline start hour", &tl.StartHour) },
		func() error { return askInt(p, "Timeline end hour", &tl.EndHour) },
		func() error { return askInt(p, "Snap minutes", &tl.SnapMinutes) },
		func() error { return askInt(p, "Cleaning minutes", &tl.CleaningMinutes) },
		func() error { return askFloat(p, "Default price", &tl.DefaultPrice) },
		func() error { return p.askString("Cinema id", &cfg.Cinema.ID) },
		func() error { return p.askString("Catalog file (empty for built-in)", &cfg.Cinema.CatalogPath) },
		func() error { return p.askString("Database path", &cfg.Storage.DBPath) },
		func() error { return askTheme(p, &cfg.UI.Theme) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	_, _ = fmt.Fprintln(out, "\nConfiguration saved.")
	return nil
}

// prompter reads answers line by line. Running out of input ends the
// session with io.ErrUnexpectedEOF instead of looping.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p prompter) line() (string, error) {
	s, err := p.in.ReadString('\n')
	if err != nil && (s == "" || !errors.Is(err, io.EOF)) {
		if errors.Is(err, io.EOF) {
			return "", io.ErrUnexpectedEOF
		}
		return "", err
	}
	return strings.TrimSpace(s), nil
}

func (p prompter) confirm(question string) bool {
	_, _ = fmt.Fprintf(p.out, "%s [y/N]: ", question)
	answer, err := p.line()
	if err != nil {
		return false
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true
	}
	return false
}

// ask shows label with the current value and returns the answer, or
// current when the answer is empty.
func (p prompter) ask(label, current string) (string, error) {
	if current == "" {
		_, _ = fmt.Fprintf(p.out, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(p.out, "  %s [%s]: ", label, current)
	}
	answer, err := p.line()
	if err != nil || answer == "" {
		return current, err
	}
	return answer, nil
}

func (p prompter) askString(label string, dst *string) error {
	v, err := p.ask(label, *dst)
	if err == nil {
		*dst = v
	}
	return err
}

// askUntil repeats the prompt until parse accepts the answer.
func askUntil[T any](p prompter, label string, dst *T, format func(T) string, parse func(string) (T, error)) error {
	for {
		raw, err := p.ask(label, format(*dst))
		if err != nil {
			return err
		}
		v, err := parse(raw)
		if err == nil {
			*dst = v
			return nil
		}
		_, _ = fmt.Fprintf(p.out, "  %s\n", formatInvalid(err.Error()))
	}
}

func askInt(p prompter, label string, dst *int) error {
	return askUntil(p, label, dst, strconv.Itoa, func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return n, nil
	})
}

func askFloat(p prompter, label string, dst *float64) error {
	format := func(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
	return askUntil(p, label, dst, format, func(s string) (float64, error) {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid number %q", s)
		}
		return f, nil
	})
}

func askTheme(p prompter, dst *string) error {
	options := strings.Join(theme.Available(), ", ")
	same := func(s string) string { return s }
	return askUntil(p, "UI theme ("+options+")", dst, same, func(s string) (string, error) {
		s = strings.ToLower(s)
		if !theme.IsAvailable(s) {
			return "", fmt.Errorf("unknown theme %q", s)
		}
		return s, nil
	})
}
