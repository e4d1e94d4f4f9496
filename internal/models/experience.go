package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Experience is auxiliary travel-story content shown next to the catalog.
type Experience struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title       string             `bson:"title" json:"title"`
	Image       string             `bson:"image" json:"image"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	AuthorName  string             `bson:"authorName,omitempty" json:"authorName,omitempty"`
	AuthorEmail string             `bson:"authorEmail,omitempty" json:"authorEmail,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ExperienceFields lists the keys a partial update may touch.
var ExperienceFields = map[string]bool{
	"title":       true,
	"image":       true,
	"description": true,
	"location":    true,
	"country":     true,
	"category":    true,
	"authorName":  true,
	"authorEmail": true,
}
