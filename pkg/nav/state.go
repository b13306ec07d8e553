// Package nav models the site header and footer: menus declared as data, a
// view builder that marks the current page, and the header's view-state
// reducer. The browser runtime in site.js applies the same transitions.
package nav

import "fmt"

// ScrollThreshold is the scroll offset, in pixels, past which the header
// switches to its compact style.
const ScrollThreshold = 10

// State is the header's view state.
type State struct {
	MenuOpen     bool `json:"menu_open"`
	Scrolled     bool `json:"scrolled"`
	DropdownOpen bool `json:"dropdown_open"`
}

// BodyScrollLocked reports whether the page behind the header must not
// scroll, which is the case while the mobile menu is open.
func (s State) BodyScrollLocked() bool {
	return s.MenuOpen
}

// EventKind identifies a header event.
type EventKind int

const (
	EventToggleMenu EventKind = iota
	EventToggleDropdown
	EventRouteChange
	EventEscape
	EventOutsideClick
	EventScroll
)

func (k EventKind) String() string {
	switch k {
	case EventToggleMenu:
		return "toggle-menu"
	case EventToggleDropdown:
		return "toggle-dropdown"
	case EventRouteChange:
		return "route-change"
	case EventEscape:
		return "escape"
	case EventOutsideClick:
		return "outside-click"
	case EventScroll:
		return "scroll"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is an input to Reduce. ScrollY is only read for EventScroll.
type Event struct {
	Kind    EventKind
	ScrollY int
}

func ToggleMenu() Event     { return Event{Kind: EventToggleMenu} }
func ToggleDropdown() Event { return Event{Kind: EventToggleDropdown} }
func RouteChange() Event    { return Event{Kind: EventRouteChange} }
func Escape() Event         { return Event{Kind: EventEscape} }
func OutsideClick() Event   { return Event{Kind: EventOutsideClick} }
func Scroll(y int) Event    { return Event{Kind: EventScroll, ScrollY: y} }

// Reduce applies e to s. Route changes, Escape and outside clicks close every
// open menu; closing the mobile menu also closes its dropdown.
func Reduce(s State, e Event) State {
	switch e.Kind {
	case EventToggleMenu:
		s.MenuOpen = !s.MenuOpen
		if !s.MenuOpen {
			s.DropdownOpen = false
		}
	case EventToggleDropdown:
		s.DropdownOpen = !s.DropdownOpen
	case EventRouteChange, EventEscape, EventOutsideClick:
		s.MenuOpen = false
		s.DropdownOpen = false
	case EventScroll:
		s.Scrolled = e.ScrollY > ScrollThreshold
	}
	return s
}
