package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Review snapshots the package and author at the time it was written.
type Review struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PackageID    string             `bson:"packageId" json:"packageId"`
	PackageTitle string             `bson:"packageTitle,omitempty" json:"packageTitle,omitempty"`
	PackageImage string             `bson:"packageImage" json:"packageImage"`
	UserName     string             `bson:"userName" json:"userName"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	UserImage    string             `bson:"userImage" json:"userImage"`
	Rating       int                `bson:"rating" json:"rating"`
	Comment      string             `bson:"comment" json:"comment"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// RatingSummary is the per-package aggregate served by /reviews/average/:packageId.
type RatingSummary struct {
	AvgRating    float64 `bson:"avgRating" json:"avgRating"`
	TotalReviews int64   `bson:"totalReviews" json:"totalReviews"`
}
