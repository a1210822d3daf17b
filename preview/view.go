package preview

import (
	"errors"
	"fmt"
	"strings"
)

// View is one of the four garment faces a design can be printed on
type View string

const (
	ViewFront View = "front"
	ViewBack  View = "back"
	ViewLeft  View = "left"
	ViewRight View = "right"
)

var viewOrder = [...]View{ViewFront, ViewBack, ViewLeft, ViewRight}

// Views lists every view in the order the console cycles through them.
// Each call returns a fresh slice.
func Views() []View {
	out := make([]View, len(viewOrder))
	copy(out, viewOrder[:])
	return out
}

// ErrUnknownView is returned by ParseView for anything outside the four view names
var ErrUnknownView = errors.New("unknown view")

// Valid reports whether v is one of the four view names
func (v View) Valid() bool {
	switch v {
	case ViewFront, ViewBack, ViewLeft, ViewRight:
		return true
	}
	return false
}

// ParseView converts user or database input into a View.
// Input is trimmed and lowercased; an empty string is rejected like any other unknown name.
func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q (expected front, back, left or right)", ErrUnknownView, s)
	}
	return v, nil
}

// Next returns the view that follows v in the console's view switcher
func (v View) Next() View {
	for i, candidate := range viewOrder {
		if candidate == v {
			return viewOrder[(i+1)%len(viewOrder)]
		}
	}
	return ViewFront
}
