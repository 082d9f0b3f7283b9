// Package account implements profile synchronization between the
// stored session and the portal: loading the account page, staging
// edits, saving them, and attaching an avatar.
package account

// Phase is the state of the account screen. Transitions go through
// Reduce only, so every legal path is visible in one table.
type Phase int

const (
	// PhaseIdle is the initial state before anything has loaded.
	PhaseIdle Phase = iota

	// PhaseLoading covers the profile fetch.
	PhaseLoading

	// PhaseReady shows the profile read-only.
	PhaseReady

	// PhaseEditing has staged, unsaved field values.
	PhaseEditing

	// PhaseSaving covers the update round-trip.
	PhaseSaving

	// PhaseError is a failed load with an in-place retry available.
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseEditing:
		return "editing"
	case PhaseSaving:
		return "saving"
	case PhaseError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is an input to the account state machine.
type Event int

const (
	EventLoad Event = iota
	EventLoaded
	EventLoadFailed
	EventEdit
	EventCancel
	EventSave
	EventSaved
	EventSaveFailed
	EventRetry
)

func (e Event) String() string {
	switch e {
	case EventLoad:
		return "load"
	case EventLoaded:
		return "loaded"
	case EventLoadFailed:
		return "load_failed"
	case EventEdit:
		return "edit"
	case EventCancel:
		return "cancel"
	case EventSave:
		return "save"
	case EventSaved:
		return "saved"
	case EventSaveFailed:
		return "save_failed"
	case EventRetry:
		return "retry"
	}
	return "unknown"
}

// Reduce applies an event to a phase. It returns the next phase and
// whether the transition is legal; an illegal event leaves the phase
// unchanged with ok=false. Reduce has no side effects.
func Reduce(p Phase, e Event) (Phase, bool) {
	switch p {
	case PhaseIdle:
		if e == EventLoad {
			return PhaseLoading, true
		}
	case PhaseLoading:
		switch e {
		case EventLoaded:
			return PhaseReady, true
		case EventLoadFailed:
			return PhaseError, true
		}
	case PhaseReady:
		switch e {
		case EventEdit:
			return PhaseEditing, true
		case EventLoad:
			return PhaseLoading, true
		}
	case PhaseEditing:
		switch e {
		case EventCancel:
			return PhaseReady, true
		case EventSave:
			return PhaseSaving, true
		}
	case PhaseSaving:
		switch e {
		case EventSaved:
			return PhaseReady, true
		case EventSaveFailed:
			return PhaseEditing, true
		}
	case PhaseError:
		if e == EventRetry {
			return PhaseLoading, true
		}
	}
	return p, false
}
