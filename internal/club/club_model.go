package club

import "gorm.io/gorm"

// Club is the tenant root. Courts, coaches, users and reservations all hang
// off a club and are never visible across club boundaries.
type Club struct {
	gorm.Model
	Name string `gorm:"size:150;not null;unique" json:"name"`
	Slug string `gorm:"size:150;not null;unique" json:"slug"`
}

// SlugCheckResponse is the payload for the public slug availability check.
type SlugCheckResponse struct {
	Slug      string `json:"slug"`
	Valid     bool   `json:"valid"`
	Available bool   `json:"available"`
}
