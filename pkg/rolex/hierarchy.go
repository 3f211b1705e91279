package rolex

import (
	"errors"
	"fmt"
	"slices"
)

var ErrInsufficientRole = errors.New("rolex: insufficient role")

// Mode selects how a requirement is matched.
type Mode uint8

const (
	// Hierarchical grants access when the subject's level is at least the
	// lowest level among the required roles.
	Hierarchical Mode = iota
	// Exact grants access only when the subject's role is one of the
	// required roles.
	Exact
)

func (m Mode) String() string {
	switch m {
	case Hierarchical:
		return "hierarchical"
	case Exact:
		return "exact"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Hierarchy is an immutable role to level table.
type Hierarchy struct {
	levels map[Role]int
}

// NewHierarchy copies levels. Every role in All must have a level.
func NewHierarchy(levels map[Role]int) (*Hierarchy, error) {
	h := &Hierarchy{levels: make(map[Role]int, len(All))}
	for _, r := range All {
		lvl, ok := levels[r]
		if !ok {
			return nil, fmt.Errorf("rolex: no level for role %q", r)
		}
		h.levels[r] = lvl
	}
	for r := range levels {
		if !r.Valid() {
			return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
		}
	}
	return h, nil
}

var defaultHierarchy = &Hierarchy{levels: map[Role]int{
	User:       0,
	Admin:      1,
	SuperAdmin: 2,
}}

// Default returns user=0, admin=1, super_admin=2.
func Default() *Hierarchy { return defaultHierarchy }

// Level returns the level of r, or false for an undeclared role.
func (h *Hierarchy) Level(r Role) (int, bool) {
	lvl, ok := h.levels[r]
	return lvl, ok
}

// Levels returns a copy of the table keyed by wire name.
func (h *Hierarchy) Levels() map[string]int {
	out := make(map[string]int, len(h.levels))
	for r, lvl := range h.levels {
		out[r.String()] = lvl
	}
	return out
}

// Authorize returns nil if subject satisfies required under mode. An empty
// requirement never grants access.
func (h *Hierarchy) Authorize(subject Role, required []Role, mode Mode) error {
	if len(required) == 0 {
		return fmt.Errorf("%w: no roles required", ErrInsufficientRole)
	}
	have, ok := h.levels[subject]
	if !ok {
		return fmt.Errorf("%w: %v", ErrInsufficientRole, subject)
	}

	switch mode {
	case Exact:
		if slices.Contains(required, subject) {
			return nil
		}
	case Hierarchical:
		lowest, found := 0, false
		for _, r := range required {
			lvl, ok := h.levels[r]
			if !ok {
				continue
			}
			if !found || lvl < lowest {
				lowest, found = lvl, true
			}
		}
		if found && have >= lowest {
			return nil
		}
	default:
		return fmt.Errorf("%w: unknown mode %v", ErrInsufficientRole, mode)
	}

	return fmt.Errorf("%w: %v does not satisfy %v", ErrInsufficientRole, subject, required)
}

// IsAdmin reports whether r is Admin or above.
func (h *Hierarchy) IsAdmin(r Role) bool {
	return h.Authorize(r, []Role{Admin}, Hierarchical) == nil
}

// IsOwnerOrAdmin grants access to the resource owner or any admin.
func (h *Hierarchy) IsOwnerOrAdmin(subjectID int64, r Role, ownerID int64) bool {
	return subjectID == ownerID || h.IsAdmin(r)
}
