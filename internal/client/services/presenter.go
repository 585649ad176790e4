package services

import "github.com/quickshcc/quicksh/internal/client/models"

// Presenter is the display surface the services drive on success paths.
// Keeping it behind an interface keeps the lifecycle logic testable without
// a rendering environment; the CLI provides the real implementation.
type Presenter interface {
	// RenderHistoryRow adds one transfer to the visible history.
	RenderHistoryRow(record models.Record)

	// RemoveHistoryRow drops the history row for code, if shown.
	RemoveHistoryRow(code models.Code)

	// ShowUploadResult presents a freshly issued code to the user.
	ShowUploadResult(record models.Record)
}
