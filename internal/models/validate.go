package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Railly/tinte-sub002/internal/color"
)

// Validation errors.
var (
	ErrMissingRole      = errors.New("missing role")
	ErrUnparseableColor = errors.New("unparseable color")
)

// RoleError reports which role of which mode broke a block invariant.
type RoleError struct {
	Mode  Mode
	Role  Role
	Value string
	Err   error
}

func (e *RoleError) Error() string {
	where := string(e.Role)
	if e.Mode != "" {
		where = string(e.Mode) + "." + where
	}
	if errors.Is(e.Err, ErrMissingRole) {
		return fmt.Sprintf("%s: %v", where, e.Err)
	}
	return fmt.Sprintf("%s: %v %q", where, e.Err, e.Value)
}

func (e *RoleError) Unwrap() error {
	return e.Err
}

// ValidateBlock checks that every role is present and parses as a color.
func ValidateBlock(b Block) error {
	for _, role := range Roles {
		value := b.Get(role)
		if strings.TrimSpace(value) == "" {
			return &RoleError{Role: role, Err: ErrMissingRole}
		}
		if !color.Valid(value) {
			return &RoleError{Role: role, Value: value, Err: ErrUnparseableColor}
		}
	}
	return nil
}

// ValidateTheme runs ValidateBlock on both modes.
func ValidateTheme(t Theme) error {
	for _, mode := range Modes {
		if err := ValidateBlock(t.Block(mode)); err != nil {
			var roleErr *RoleError
			if errors.As(err, &roleErr) {
				roleErr.Mode = mode
			}
			return fmt.Errorf("theme %q: %w", t.Name, err)
		}
	}
	return nil
}

// NormalizeBlock validates b and rewrites every value to its canonical hex form.
func NormalizeBlock(b Block) (Block, error) {
	if err := ValidateBlock(b); err != nil {
		return Block{}, err
	}
	out := b
	for _, role := range Roles {
		hex, err := color.Normalize(b.Get(role))
		if err != nil {
			return Block{}, &RoleError{Role: role, Value: b.Get(role), Err: ErrUnparseableColor}
		}
		out = out.With(role, hex)
	}
	return out, nil
}

// NormalizeTheme validates t and returns a copy with canonical colors.
func NormalizeTheme(t Theme) (Theme, error) {
	out := t.Clone()
	for _, mode := range Modes {
		block, err := NormalizeBlock(t.Block(mode))
		if err != nil {
			var roleErr *RoleError
			if errors.As(err, &roleErr) {
				roleErr.Mode = mode
			}
			return Theme{}, fmt.Errorf("theme %q: %w", t.Name, err)
		}
		out = out.WithBlock(mode, block)
	}
	return out, nil
}
