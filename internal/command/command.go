// Package command parses command-mode input lines into structured actions.
// Parsing is pure; displaying results or errors is the caller's job.
package command

import (
	"strconv"
	"strings"
)

// Kind discriminates the parsed action.
type Kind int

const (
	// Unknown carries the original text so the caller can echo an error.
	Unknown Kind = iota
	// ShowProcessDetail requests the detail view for Action.PID.
	ShowProcessDetail
	// ShowHelp requests the command help listing.
	ShowHelp
	// ExitCommandMode returns the UI to normal mode.
	ExitCommandMode
)

// Action is the result of parsing one command line.
type Action struct {
	Kind Kind
	PID  int32
	Text string
}

// Parse interprets a raw command line. The first whitespace-delimited token
// selects the command; anything unrecognized, including an empty line or a
// malformed PID, comes back as Unknown rather than an error.
func Parse(line string) Action {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Action{Kind: Unknown, Text: line}
	}

	switch strings.ToLower(fields[0]) {
	case "p":
		if len(fields) != 2 {
			return Action{Kind: Unknown, Text: line}
		}
		pid, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil || pid <= 0 {
			return Action{Kind: Unknown, Text: line}
		}
		return Action{Kind: ShowProcessDetail, PID: int32(pid)}
	case "help", "?":
		return Action{Kind: ShowHelp}
	case "exit", "q":
		return Action{Kind: ExitCommandMode}
	default:
		return Action{Kind: Unknown, Text: line}
	}
}
