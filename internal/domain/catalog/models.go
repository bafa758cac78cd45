package catalog

import "time"

type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type SubCategory struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	CategoryID string    `json:"categoryId"`
	CreatedAt  time.Time `json:"createdAt"`
}

type Skill struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	SubCategoryID string    `json:"subCategoryId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type RoleRequirement struct {
	SkillID string `json:"skillId"`
	Level   int    `json:"level"`
}

type Role struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	InheritsFromID string            `json:"inheritsFromId,omitempty"`
	RequiredSkills []RoleRequirement `json:"requiredSkills"`
	CreatedAt      time.Time         `json:"createdAt"`
}
