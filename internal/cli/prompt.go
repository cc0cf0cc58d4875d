package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/os2iot/iotconsole/internal/tui"
)

// ErrConfirmationRequired is returned when a destructive command runs without
// a terminal and without --yes.
var ErrConfirmationRequired = errors.New("confirmation required: re-run with --yes")

// PromptResult contains the result of a user prompt interaction.
type PromptResult struct {
	// Accepted is true if the user typed "y" or "yes".
	Accepted bool
	// Cancelled is true if reading input failed.
	Cancelled bool
}

// Confirm asks a yes/no question. Empty input declines.
func Confirm(writer io.Writer, reader io.Reader, question string) PromptResult {
	fmt.Fprintf(writer, "%s ", question)

	scanner := bufio.NewScanner(reader)
	if !scanner.Scan() {
		if scanner.Err() != nil {
			return PromptResult{Cancelled: true}
		}
		// EOF without error - treat as decline (user pressed Ctrl+D)
		return PromptResult{}
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes":
		return PromptResult{Accepted: true}
	default:
		return PromptResult{}
	}
}

// confirmDestructive returns nil when the action may proceed. Outside a
// terminal the caller must pass --yes.
func confirmDestructive(writer io.Writer, reader io.Reader, question string, yes, interactive bool) error {
	if yes {
		return nil
	}
	if !interactive {
		return ErrConfirmationRequired
	}
	res := Confirm(writer, reader, question)
	if !res.Accepted {
		return errAborted
	}
	return nil
}

var errAborted = errors.New("aborted")

// stdinIsTerminal is replaced in tests.
var stdinIsTerminal = tui.IsTTY //nolint:gochecknoglobals // Test seam.
