package session

import "fmt"

// EventKind classifies a discrete input event.
type EventKind int

// Event kinds.
const (
	EventOther EventKind = iota
	EventChar
	EventBackspace
	EventConfirm
	EventArrow
	EventCancel
	EventToggle
)

// Event is one input event, already decoupled from terminal key codes.
type Event struct {
	Kind EventKind
	Char rune
	Dir  Direction
}

// CharEvent returns an event typing r.
func CharEvent(r rune) Event {
	return Event{Kind: EventChar, Char: r}
}

// ArrowEvent returns an arrow event in direction d.
func ArrowEvent(d Direction) Event {
	return Event{Kind: EventArrow, Dir: d}
}

// Dispatch applies ev to the session. A commit that fails returns the error
// and leaves every committed value unchanged; the error is also kept as the
// session status. No error is fatal.
//
// Toggle only enters Settings: toggling while on Settings does nothing, and
// Cancel is the way back to Main. Cancel on Main ends the session.
func (s *Session) Dispatch(ev Event) error {
	switch ev.Kind {
	case EventCancel:
		if s.screen == ScreenSettings {
			s.screen = ScreenMain
		} else {
			s.exit = true
		}
		return nil
	case EventToggle:
		if s.screen == ScreenMain {
			s.screen = ScreenSettings
		}
		return nil
	}

	if s.screen != ScreenSettings {
		return nil
	}
	focus := s.grid.Focus()
	switch ev.Kind {
	case EventArrow:
		s.grid.Move(ev.Dir)
	case EventChar:
		if focus.HasBuffer() {
			s.buffers[focus] += string(ev.Char)
		}
	case EventBackspace:
		if focus.HasBuffer() {
			s.buffers[focus] = dropLastRune(s.buffers[focus])
		}
	case EventConfirm:
		err := s.commit(focus)
		if err != nil {
			s.status = Status{Text: err.Error(), Err: err}
			return err
		}
		s.status = s.commitStatus(focus)
	}
	return nil
}

// commitStatus reports a successful commit. An undefined area is shown with
// its reason so a recalculation never looks like it produced a value.
func (s *Session) commitStatus(f Field) Status {
	if !s.area.Defined() {
		if f == FieldRecalculateArea {
			return Status{Text: fmt.Sprintf("Area undefined: %v", s.area.Err), Err: s.area.Err}
		}
		return Status{Text: fmt.Sprintf("%s updated; area undefined: %v", f, s.area.Err), Err: s.area.Err}
	}
	if f == FieldRecalculateArea {
		return Status{Text: "Area recalculated"}
	}
	return Status{Text: fmt.Sprintf("%s updated", f)}
}

func dropLastRune(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return string(runes[:len(runes)-1])
}
