package domain

import (
	"time"

	"github.com/google/uuid"
)

// SelectionEvent records one dropdown change and how many points it matched.
type SelectionEvent struct {
	ID            string    `json:"id"`
	Changed       string    `json:"changed"`
	Selection     Selection `json:"selection"`
	MatchedPoints int       `json:"matched_points"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewSelectionEvent stamps a selection change with a fresh id and the current time.
func NewSelectionEvent(sel Selection, changed Level, matched int) SelectionEvent {
	return SelectionEvent{
		ID:            uuid.NewString(),
		Changed:       changed.String(),
		Selection:     sel,
		MatchedPoints: matched,
		OccurredAt:    clock.Now().UTC(),
	}
}
