// Package input parses the TUI prompt line.
package input

import "strings"

// PromptCommand describes a command suggestion entry.
type PromptCommand struct {
	Name        string
	Description string
}

// Prompt command names.
const (
	CmdDate   = "/date"
	CmdFormat = "/format"
	CmdSave   = "/save"
	CmdUndo   = "/undo"
	CmdYank   = "/yank"
)

// Commands lists the commands the prompt understands.
var Commands = []PromptCommand{
	{Name: CmdDate, Description: "Jump to a day (2025-03-14, tomorrow, friday, +2)"},
	{Name: CmdFormat, Description: "Show auditoriums supporting a format (All, 2D, 3D, IMAX)"},
	{Name: CmdSave, Description: "Save the schedule"},
	{Name: CmdUndo, Description: "Undo the last change"},
	{Name: CmdYank, Description: "Copy the day's showtimes"},
}

// Command is a parsed prompt line.
type Command struct {
	Name string
	Arg  string
}

// Parse splits a prompt line into command and argument.
// A line without a leading slash is a date to jump to.
func Parse(line string) Command {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}
	}
	if !strings.HasPrefix(line, "/") {
		return Command{Name: CmdDate, Arg: line}
	}
	name, arg, _ := strings.Cut(line, " ")
	return Command{Name: strings.ToLower(name), Arg: strings.TrimSpace(arg)}
}

// Known reports whether the command name is one of Commands.
func (c Command) Known() bool {
	for _, cmd := range Commands {
		if cmd.Name == c.Name {
			return true
		}
	}
	return false
}

// MatchingCommands returns commands that match the current input prefix.
func MatchingCommands(line string, commands []PromptCommand) []PromptCommand {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") || strings.Contains(line, " ") {
		return nil
	}

	prefix := strings.ToLower(trimmed)
	matches := make([]PromptCommand, 0, len(commands))
	for _, cmd := range commands {
		if strings.HasPrefix(cmd.Name, prefix) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// Autocomplete returns the first matching command and whether it exists.
func Autocomplete(line string, commands []PromptCommand) (string, bool) {
	matches := MatchingCommands(line, commands)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Name + " ", true
}
