package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/quickshcc/quicksh/internal/client/entry"
	"github.com/quickshcc/quicksh/internal/client/models"
)

// makeRaw and restoreTerm are test seams for terminal control. In tests,
// replace them with stubs to avoid touching the terminal.
var (
	makeRaw     = term.MakeRaw
	restoreTerm = term.Restore
)

// ErrEntryAborted is returned when the user leaves the digit entry with
// Esc or Ctrl-C.
var ErrEntryAborted = errors.New("code entry aborted")

// runDigitEntry drives e with single keystrokes read from in, re-rendering
// the five cells after every key. Enter finishes the entry from any cell,
// regardless of fill state; ok mirrors e.Compose.
func runDigitEntry(e *entry.Entry, in io.Reader, w io.Writer) (code models.Code, ok bool, err error) {
	buf := make([]byte, 1)
	renderCells(e, w)

	for {
		n, err := in.Read(buf)
		if err != nil {
			return 0, false, err
		}
		if n == 0 {
			continue
		}

		switch ch := buf[0]; {
		case ch == '\r' || ch == '\n':
			fmt.Fprintln(w)
			code, ok := e.Compose()
			return code, ok, nil

		case ch == 0x7f || ch == 0x08:
			e.Backspace(e.Focus())

		case ch == 0x03 || ch == 0x1b:
			fmt.Fprintln(w)
			return 0, false, ErrEntryAborted

		default:
			e.InputDigit(e.Focus(), ch)
		}

		renderCells(e, w)
	}
}

func renderCells(e *entry.Entry, w io.Writer) {
	fmt.Fprint(w, "\r")
	for i := 1; i <= entry.Cells; i++ {
		marker := byte('_')
		if cell := e.Cell(i); cell != 0 {
			marker = cell
		}
		if i == e.Focus() {
			fmt.Fprintf(w, "[%c]", marker)
		} else {
			fmt.Fprintf(w, " %c ", marker)
		}
	}
}

// readCodeInteractive switches stdin to raw mode and runs the digit entry
// against the real terminal.
func readCodeInteractive(e *entry.Entry) (models.Code, bool, error) {
	fd := int(os.Stdin.Fd())
	state, err := makeRaw(fd)
	if err != nil {
		return 0, false, err
	}
	defer func() { _ = restoreTerm(fd, state) }()

	return runDigitEntry(e, os.Stdin, os.Stdout)
}
