// Package models defines the canonical theme model shared by every tinte package.
package models

import (
	"fmt"
	"slices"
	"strings"
)

// Role names one semantic color slot of a Block.
type Role string

const (
	RoleBg  Role = "bg"
	RoleBg2 Role = "bg_2"
	RoleUI  Role = "ui"
	RoleUI2 Role = "ui_2"
	RoleUI3 Role = "ui_3"
	RoleTx3 Role = "tx_3"
	RoleTx2 Role = "tx_2"
	RoleTx  Role = "tx"
	RolePr  Role = "pr"
	RoleSc  Role = "sc"
	RoleAc1 Role = "ac_1"
	RoleAc2 Role = "ac_2"
	RoleAc3 Role = "ac_3"
)

// Roles lists every semantic role in canonical order.
var Roles = []Role{
	RoleBg, RoleBg2,
	RoleUI, RoleUI2, RoleUI3,
	RoleTx3, RoleTx2, RoleTx,
	RolePr, RoleSc,
	RoleAc1, RoleAc2, RoleAc3,
}

// ParseRole converts a role name into a Role.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Roles, role) {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return role, nil
}

// Mode selects the light or dark variant of a theme.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
)

// Modes lists both modes, light first.
var Modes = []Mode{ModeLight, ModeDark}

// ParseMode converts a mode name into a Mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeLight:
		return ModeLight, nil
	case ModeDark:
		return ModeDark, nil
	}
	return "", fmt.Errorf("unknown mode %q (want light or dark)", s)
}

// Block holds the 13 semantic colors of one mode.
type Block struct {
	Bg  string `json:"bg" yaml:"bg"`
	Bg2 string `json:"bg_2" yaml:"bg_2"`
	UI  string `json:"ui" yaml:"ui"`
	UI2 string `json:"ui_2" yaml:"ui_2"`
	UI3 string `json:"ui_3" yaml:"ui_3"`
	Tx3 string `json:"tx_3" yaml:"tx_3"`
	Tx2 string `json:"tx_2" yaml:"tx_2"`
	Tx  string `json:"tx" yaml:"tx"`
	Pr  string `json:"pr" yaml:"pr"`
	Sc  string `json:"sc" yaml:"sc"`
	Ac1 string `json:"ac_1" yaml:"ac_1"`
	Ac2 string `json:"ac_2" yaml:"ac_2"`
	Ac3 string `json:"ac_3" yaml:"ac_3"`
}

func (b *Block) field(role Role) *string {
	switch role {
	case RoleBg:
		return &b.Bg
	case RoleBg2:
		return &b.Bg2
	case RoleUI:
		return &b.UI
	case RoleUI2:
		return &b.UI2
	case RoleUI3:
		return &b.UI3
	case RoleTx3:
		return &b.Tx3
	case RoleTx2:
		return &b.Tx2
	case RoleTx:
		return &b.Tx
	case RolePr:
		return &b.Pr
	case RoleSc:
		return &b.Sc
	case RoleAc1:
		return &b.Ac1
	case RoleAc2:
		return &b.Ac2
	case RoleAc3:
		return &b.Ac3
	}
	return nil
}

// Get returns the color assigned to role, or "" for an unknown role.
func (b Block) Get(role Role) string {
	if f := b.field(role); f != nil {
		return *f
	}
	return ""
}

// With returns a copy of b with role set to value.
func (b Block) With(role Role, value string) Block {
	if f := b.field(role); f != nil {
		*f = value
	}
	return b
}

// Map returns the block as role -> color.
func (b Block) Map() map[Role]string {
	out := make(map[Role]string, len(Roles))
	for _, role := range Roles {
		out[role] = b.Get(role)
	}
	return out
}

// Theme is the canonical, mode-aware theme.
type Theme struct {
	ID         string   `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string   `json:"name" yaml:"name"`
	Author     string   `json:"author,omitempty" yaml:"author,omitempty"`
	Provenance string   `json:"provenance,omitempty" yaml:"provenance,omitempty"`
	Tags       []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	OwnerID    string   `json:"owner_id,omitempty" yaml:"owner_id,omitempty"`
	ForkedFrom string   `json:"forked_from,omitempty" yaml:"forked_from,omitempty"`
	IsPublic   bool     `json:"is_public,omitempty" yaml:"is_public,omitempty"`
	Light      Block    `json:"light" yaml:"light"`
	Dark       Block    `json:"dark" yaml:"dark"`
}

// Block returns the block for mode. Any mode other than light yields dark.
func (t Theme) Block(mode Mode) Block {
	if mode == ModeLight {
		return t.Light
	}
	return t.Dark
}

// WithBlock returns a copy of t with the block for mode replaced.
func (t Theme) WithBlock(mode Mode, block Block) Theme {
	out := t.Clone()
	if mode == ModeLight {
		out.Light = block
	} else {
		out.Dark = block
	}
	return out
}

// Clone returns a deep copy of t.
func (t Theme) Clone() Theme {
	out := t
	if t.Tags != nil {
		out.Tags = slices.Clone(t.Tags)
	}
	return out
}

// Slug returns a filesystem friendly version of the theme name.
func (t Theme) Slug() string {
	return Slugify(t.Name)
}

// Slugify lower-cases s and collapses anything that is not a letter or digit
// into single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "theme"
	}
	return slug
}
