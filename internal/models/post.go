package models

// Post belongs to an Account via AccountID. The reference is intent, not a
// database constraint: deleting an account leaves its posts in place.
type Post struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	AccountID uint   `gorm:"not null;index" json:"account_id"`
	Title     string `gorm:"not null;index" json:"title"`
	Body      string `gorm:"type:text;not null" json:"body"`
	// LikeCount is only ever mutated through increment/decrement, never set directly.
	LikeCount int `gorm:"not null;default:0" json:"like_count"`
}

// PostColumns is the set of post columns that may be updated
// through the field-level update operation.
var PostColumns = map[string]struct{}{
	"title": {},
	"body":  {},
}
