package account

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReduceLegalTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  Phase
		event Event
		want  Phase
	}{
		{"initial load", PhaseIdle, EventLoad, PhaseLoading},
		{"load succeeds", PhaseLoading, EventLoaded, PhaseReady},
		{"load fails", PhaseLoading, EventLoadFailed, PhaseError},
		{"enter edit", PhaseReady, EventEdit, PhaseEditing},
		{"refresh from ready", PhaseReady, EventLoad, PhaseLoading},
		{"cancel edit", PhaseEditing, EventCancel, PhaseReady},
		{"submit save", PhaseEditing, EventSave, PhaseSaving},
		{"save succeeds", PhaseSaving, EventSaved, PhaseReady},
		{"save fails back to edit", PhaseSaving, EventSaveFailed, PhaseEditing},
		{"retry after error", PhaseError, EventRetry, PhaseLoading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Reduce(tt.from, tt.event)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduceIllegalEventsLeavePhaseUnchanged(t *testing.T) {
	tests := []struct {
		name  string
		from  Phase
		event Event
	}{
		{"edit while loading", PhaseLoading, EventEdit},
		{"save without editing", PhaseReady, EventSave},
		{"cancel while saving", PhaseSaving, EventCancel},
		{"retry while ready", PhaseReady, EventRetry},
		{"edit in error state", PhaseError, EventEdit},
		{"loaded out of nowhere", PhaseIdle, EventLoaded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Reduce(tt.from, tt.event)
			assert.False(t, ok)
			assert.Equal(t, tt.from, got)
		})
	}
}

func TestPhaseAndEventStrings(t *testing.T) {
	assert.Equal(t, "editing", PhaseEditing.String())
	assert.Equal(t, "save_failed", EventSaveFailed.String())
	assert.Equal(t, "unknown", Phase(99).String())
}
