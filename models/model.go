package models

import (
	"time"
)

// Recipe is a catalog entry managed through the admin panel. Deletes are
// hard deletes: suggestion options keep a soft reference to the id and are
// expected to tolerate it going stale.
type Recipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Ingredients string    `gorm:"type:text;not null" json:"ingredients"`
	Description string    `gorm:"type:text" json:"description"`
	PrepTime    string    `gorm:"size:100" json:"prep_time"`
	Tags        string    `gorm:"size:200" json:"tags"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Feedback is an append-only telemetry row recorded when a visitor accepts
// or rejects offered options. Never updated or deleted.
type Feedback struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	UserText        string    `gorm:"type:text" json:"user_text"`
	Option1Title    string    `gorm:"size:255" json:"option1_title"`
	Option1RecipeID *uint     `json:"option1_recipe_id"`
	Option2Title    string    `gorm:"size:255" json:"option2_title"`
	Option2RecipeID *uint     `json:"option2_recipe_id"`
	Action          string    `gorm:"size:20;not null" json:"action"`
	ChosenIndex     *int      `json:"chosen_index"`
	FollowUpAnswer  string    `gorm:"type:text" json:"follow_up_answer"`
}

// Feedback actions.
const (
	FeedbackAccepted = "accepted"
	FeedbackRejected = "rejected"
	FeedbackOther    = "other"
)
