// Package models contains data structures for the application's domain models.
package models

// Account represents a registered account on the platform.
// Usernames are indexed but intentionally not unique.
type Account struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"not null;index" json:"username"`
	IsAdmin  bool    `gorm:"not null;default:false" json:"is_admin"`
	ImageURL *string `json:"image_url"`
}

// AccountColumns is the set of account columns that may be updated
// through the field-level update operation.
var AccountColumns = map[string]struct{}{
	"username":  {},
	"is_admin":  {},
	"image_url": {},
}
