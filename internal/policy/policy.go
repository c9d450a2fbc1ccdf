// Package policy holds the process-wide layout policy consulted by the
// split and close planners.
package policy

import (
	"fmt"
	"strings"
)

// LayoutPolicy selects how a split distributes the cursor between the
// two resulting windows.
type LayoutPolicy int

const (
	// DuplicatePoint gives both windows the old anchor and cursor.
	DuplicatePoint LayoutPolicy = iota
	// MinimizeMotion scrolls the lower window so text keeps its screen
	// rows, and moves focus to whichever window shows the old cursor.
	MinimizeMotion
	// RevealIfHidden is MinimizeMotion plus a guarantee that the old
	// cursor stays visible in one of the two windows.
	RevealIfHidden
)

// Policies lists every policy in cycle order.
var Policies = []LayoutPolicy{DuplicatePoint, MinimizeMotion, RevealIfHidden}

// String returns the canonical name of the policy.
func (p LayoutPolicy) String() string {
	switch p {
	case DuplicatePoint:
		return "duplicate-point"
	case MinimizeMotion:
		return "minimize-motion"
	case RevealIfHidden:
		return "reveal-if-hidden"
	default:
		return fmt.Sprintf("LayoutPolicy(%d)", int(p))
	}
}

// Valid reports whether p is a known policy.
func (p LayoutPolicy) Valid() bool {
	return p >= DuplicatePoint && p <= RevealIfHidden
}

// Next returns the policy after p in cycle order.
func (p LayoutPolicy) Next() LayoutPolicy {
	if !p.Valid() {
		return DuplicatePoint
	}
	return Policies[(int(p)+1)%len(Policies)]
}

// ParsePolicy parses a policy name. Besides the canonical names it
// accepts the legacy boolean spellings: "t" or "true" for MinimizeMotion,
// "nil" or "false" for DuplicatePoint, and "other" or "hybrid" for
// RevealIfHidden.
func ParsePolicy(s string) (LayoutPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "duplicate-point", "duplicatepoint", "duplicate", "nil", "false":
		return DuplicatePoint, nil
	case "minimize-motion", "minimizemotion", "minimize", "t", "true":
		return MinimizeMotion, nil
	case "reveal-if-hidden", "revealifhidden", "reveal", "other", "hybrid":
		return RevealIfHidden, nil
	default:
		return DuplicatePoint, fmt.Errorf("unknown layout policy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p LayoutPolicy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("invalid layout policy %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *LayoutPolicy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
