package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the sentiment label assigned to a feedback entry.
type Category string

const (
	CategoryAppreciation Category = "Appreciation"
	CategoryConcerns     Category = "Concerns"
	CategorySuggestions  Category = "Suggestions"
	// CategoryError marks entries whose classification call failed. It is
	// never produced for ambiguous-but-received model output; that
	// normalizes to Concerns.
	CategoryError Category = "Error"
)

// Categories lists the canonical sentiment labels, excluding the Error
// sentinel. Dashboard aggregates are computed over these three only.
var Categories = []Category{CategoryAppreciation, CategoryConcerns, CategorySuggestions}

// Canonical reports whether c is one of the three real sentiment labels.
func (c Category) Canonical() bool {
	return c == CategoryAppreciation || c == CategoryConcerns || c == CategorySuggestions
}

const (
	DefaultFeedbackType = "General"
	DefaultBranch       = "Unknown"
)

// Feedback is one submitted feedback entry. The author reference is
// nullable: deleting an account keeps its submissions with user_id set to
// null.
type Feedback struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       *uint     `gorm:"index" json:"user_id"`
	User         *User     `gorm:"constraint:OnDelete:SET NULL" json:"-"`
	Content      string    `gorm:"not null" json:"content"`
	Category     Category  `gorm:"not null;index" json:"category"`
	FeedbackType string    `gorm:"index" json:"feedback_type"`
	Branch       string    `gorm:"index" json:"branch"`
	CreatedAt    time.Time `json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	// Category is never null at rest.
	if f.Category == "" {
		f.Category = CategoryConcerns
	}
	return
}
