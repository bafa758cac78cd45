package employee

import "time"

type Employee struct {
	ID               string     `json:"id"`
	Name             string     `json:"name"`
	Department       string     `json:"department,omitempty"`
	Roles            []string   `json:"roles"`
	Active           *bool      `json:"isActive,omitempty"`
	DeactivationDate *time.Time `json:"deactivationDate,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}
