package panel

// EventKind distinguishes how an entry was activated.
type EventKind int

const (
	Pointer EventKind = iota
	Keyboard
)

// Event is a user activation of a list entry.
type Event struct {
	Kind EventKind
	// Key is the KeyboardEvent.key value for keyboard events.
	Key string
}

// Click is a pointer activation.
func Click() Event {
	return Event{Kind: Pointer}
}

// Key is a keyboard activation.
func Key(key string) Event {
	return Event{Kind: Keyboard, Key: key}
}

// Activate applies ev to the entry at index. Enter and Space select exactly
// like a click. Arrow keys move relative to the current selection and
// Home/End jump to the ends. Other keys are ignored.
func (p *Panel[T]) Activate(index int, ev Event) bool {
	if ev.Kind == Pointer {
		return p.Select(index)
	}

	switch ev.Key {
	case "Enter", " ", "Spacebar":
		return p.Select(index)
	case "ArrowDown", "ArrowRight":
		return p.Select(p.selected + 1)
	case "ArrowUp", "ArrowLeft":
		return p.Select(p.selected - 1)
	case "Home":
		return p.Select(0)
	case "End":
		return p.Select(len(p.items) - 1)
	default:
		return false
	}
}
