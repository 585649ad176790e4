// Package entry implements the five-cell code input state machine: each cell
// holds one decimal digit, focus auto-advances on input and retreats on
// backspace, and the composed value is only readable once all cells are
// filled. The package is view-agnostic; a UI drives it with keystrokes and
// reads back cell contents and focus.
package entry

import (
	"errors"
	"strings"

	"github.com/quickshcc/quicksh/internal/client/models"
)

// Cells is the number of digit cells, matching the 5-digit code format.
const Cells = 5

var (
	// ErrCodeLength is surfaced when a prefill candidate has the wrong
	// length or composes to an out-of-range value.
	ErrCodeLength = errors.New("invalid code length")

	// ErrCodeNotNumeric is surfaced when a prefill candidate contains a
	// non-digit.
	ErrCodeNotNumeric = errors.New("code is not numeric")
)

// Entry holds the five independently addressable cells, indexed 1..Cells,
// and the currently focused cell.
type Entry struct {
	cells [Cells]byte // 0 means empty, otherwise '0'..'9'
	focus int
}

func New() *Entry {
	return &Entry{focus: 1}
}

// Focus returns the currently focused cell index (1..Cells).
func (e *Entry) Focus() int {
	return e.focus
}

// Cell returns the digit held in cell i, or 0 when the cell is empty or i
// is out of bounds.
func (e *Entry) Cell(i int) byte {
	if i < 1 || i > Cells {
		return 0
	}
	return e.cells[i-1]
}

// InputDigit applies a typed character to cell i. A valid digit is kept and
// focus moves to the next cell (when there is one). A non-digit, or the
// digit 0 in cell 1 (codes cannot start with 0), clears the cell and leaves
// focus unchanged.
func (e *Entry) InputDigit(i int, ch byte) {
	if i < 1 || i > Cells {
		return
	}

	if ch < '0' || ch > '9' || (i == 1 && ch == '0') {
		e.cells[i-1] = 0
		return
	}

	e.cells[i-1] = ch
	if i < Cells {
		e.focus = i + 1
	}
}

// Backspace handles the backspace key in cell i. A non-empty cell is simply
// cleared in place; backspace in an already-empty cell moves focus back to
// the previous cell (when there is one).
func (e *Entry) Backspace(i int) {
	if i < 1 || i > Cells {
		return
	}

	if e.cells[i-1] != 0 {
		e.cells[i-1] = 0
		return
	}
	if i > 1 {
		e.focus = i - 1
	}
}

// Compose concatenates the five cells in order. The second return value is
// false while any cell is still empty, in which case no code is available.
func (e *Entry) Compose() (models.Code, bool) {
	var b strings.Builder
	for _, cell := range e.cells {
		if cell == 0 {
			return 0, false
		}
		b.WriteByte(cell)
	}

	code, err := models.ParseCode(b.String())
	if err != nil {
		return 0, false
	}
	return code, true
}

// Reset empties every cell and returns focus to cell 1.
func (e *Entry) Reset() {
	e.cells = [Cells]byte{}
	e.focus = 1
}

// Prefill populates the cells from a URL path segment carrying a code. On
// any mismatch the cells are left untouched and a validation error is
// returned: wrong length or an out-of-range value yield ErrCodeLength, a
// non-numeric segment yields ErrCodeNotNumeric.
func (e *Entry) Prefill(segment string) error {
	if len(segment) != Cells {
		return ErrCodeLength
	}

	for i := 0; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return ErrCodeNotNumeric
		}
	}

	if _, err := models.ParseCode(segment); err != nil {
		return ErrCodeLength
	}

	for i := 0; i < Cells; i++ {
		e.cells[i] = segment[i]
	}
	return nil
}
