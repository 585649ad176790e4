package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/quickshcc/quicksh/internal/client/models"
)

// historyNameLimit mirrors the compact history column: longer names are cut
// to 13 runes plus an ellipsis.
const historyNameLimit = 14

// TermView implements services.Presenter on a terminal. It keeps an ordered
// model of the visible history rows so the history can be re-listed on
// demand and rows can be dropped when transfers are deleted.
type TermView struct {
	mu    sync.Mutex
	w     io.Writer
	order []models.Code
	rows  map[models.Code]models.Record
}

func NewTermView(w io.Writer) *TermView {
	return &TermView{
		w:    w,
		rows: make(map[models.Code]models.Record),
	}
}

func historyName(name string) string {
	runes := []rune(name)
	if len(runes) <= historyNameLimit {
		return name
	}
	return string(runes[:historyNameLimit-1]) + "…"
}

func (v *TermView) RenderHistoryRow(record models.Record) {
	v.mu.Lock()
	if _, known := v.rows[record.Code]; !known {
		v.order = append(v.order, record.Code)
	}
	v.rows[record.Code] = record
	v.mu.Unlock()

	fmt.Fprintf(v.w, "  %s  %-14s  expires %s\n", record.Code, historyName(record.Filename), record.Expire)
}

func (v *TermView) RemoveHistoryRow(code models.Code) {
	v.mu.Lock()
	if _, known := v.rows[code]; known {
		delete(v.rows, code)
		kept := v.order[:0]
		for _, c := range v.order {
			if c != code {
				kept = append(kept, c)
			}
		}
		v.order = kept
	}
	v.mu.Unlock()
}

func (v *TermView) ShowUploadResult(record models.Record) {
	fmt.Fprintf(v.w, "Transfer ready!\n  code:    %s\n  file:    %s\n  expires: %s\n", record.Code, record.Filename, record.Expire)
}

// ShowStatus prints a one-line status or validation message.
func (v *TermView) ShowStatus(msg string) {
	fmt.Fprintln(v.w, msg)
}

// History returns the currently displayed rows in render order.
func (v *TermView) History() []models.Record {
	v.mu.Lock()
	defer v.mu.Unlock()

	records := make([]models.Record, 0, len(v.order))
	for _, code := range v.order {
		records = append(records, v.rows[code])
	}
	return records
}
