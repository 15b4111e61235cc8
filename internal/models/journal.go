package models

import (
	"time"
)

// Reflection is one prompt/response round attached to a journal entry.
// Immutable once created; it has no identity of its own outside its entry.
type Reflection struct {
	Prompt    string    `bson:"prompt" json:"prompt"`
	Response  string    `bson:"response" json:"response"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// JournalEntry is a single journaling entry for a user.
// Reflections are stored as structured records; the flattened text form is a
// presentation-only projection (see services.FlattenReflections).
type JournalEntry struct {
	ID         string       `bson:"_id,omitempty" json:"id"`
	UserID     string       `bson:"user_id" json:"userId"`
	Category   string       `bson:"category" json:"category"`
	SubEmotion string       `bson:"sub_emotion" json:"subEmotion"`
	Text       string       `bson:"text" json:"text"`
	PhotoURL   *string      `bson:"photo_url,omitempty" json:"photoUrl"`
	Reflections []Reflection `bson:"reflections" json:"reflections"`
	CreatedAt  time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time    `bson:"updated_at" json:"updatedAt"`
}
