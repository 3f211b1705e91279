// Package rolex defines the closed set of account roles and the level
// table used to decide whether a role satisfies a requirement.
package rolex

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownRole = errors.New("rolex: unknown role")

// Role is one of User, Admin or SuperAdmin. The zero value is User.
type Role uint8

const (
	User Role = iota
	Admin
	SuperAdmin
)

// All lists every role in ascending privilege order.
var All = []Role{User, Admin, SuperAdmin}

var names = map[Role]string{
	User:       "user",
	Admin:      "admin",
	SuperAdmin: "super_admin",
}

// ParseRole maps a wire name to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	want := strings.ToLower(strings.TrimSpace(s))
	for r, name := range names {
		if name == want {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether r is a declared role.
func (r Role) Valid() bool {
	_, ok := names[r]
	return ok
}

func (r Role) String() string {
	if name, ok := names[r]; ok {
		return name
	}
	return fmt.Sprintf("role(%d)", uint8(r))
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
