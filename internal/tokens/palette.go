package tokens

import (
	"github.com/Railly/tinte-sub002/internal/color"
	"github.com/Railly/tinte-sub002/internal/models"
)

// Status tint ratios against the mode background.
const (
	StatusBackgroundRatio = 0.1
	StatusBorderRatio     = 0.3
)

// Status maps a diagnostic status to the role that colors it.
type Status struct {
	Name string
	Role models.Role
}

// Statuses lists the diagnostic statuses in output order.
var Statuses = []Status{
	{Name: "error", Role: models.RoleAc1},
	{Name: "warning", Role: models.RoleAc3},
	{Name: "info", Role: models.RolePr},
	{Name: "success", Role: models.RoleAc2},
	{Name: "hint", Role: models.RoleSc},
}

// Triad is the solid, background and border shade of one status.
type Triad struct {
	Solid      string `json:"solid"`
	Background string `json:"background"`
	Border     string `json:"border"`
}

// TriadFor tints role against the block background.
func TriadFor(block models.Block, role models.Role) Triad {
	solid := block.Get(role)
	if hex, err := color.Normalize(solid); err == nil {
		solid = hex
	}
	return Triad{
		Solid:      solid,
		Background: color.Mix(solid, block.Bg, StatusBackgroundRatio),
		Border:     color.Mix(solid, block.Bg, StatusBorderRatio),
	}
}

// PlayerRoles is the accent rotation used for collaborator cursors and
// numbered accents.
var PlayerRoles = []models.Role{
	models.RolePr,
	models.RoleAc2,
	models.RoleSc,
	models.RoleAc3,
	models.RoleAc1,
	models.RoleTx2,
	models.RolePr,
	models.RoleSc,
}
