package models

import "time"

// Entry is one journal record. IDs are opaque strings assigned by the entry
// service at creation time, never supplied by a client. OwnerID is immutable
// after creation.
type Entry struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	OwnerID   uint      `gorm:"not null;index" json:"owner_id"`
	Date      time.Time `gorm:"type:date;not null" json:"date"`
	Title     string    `gorm:"not null" json:"title"`
	Thought   string    `json:"thought"`
	ImageRefs []string  `gorm:"serializer:json" json:"image_refs"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
