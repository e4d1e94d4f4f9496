package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Package is a catalog item.
type Package struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title    string             `bson:"title" json:"title"`
	Country  string             `bson:"country" json:"country"`
	Location string             `bson:"location" json:"location"`
	Price    float64            `bson:"price" json:"price"`
	Duration string             `bson:"duration" json:"duration"`
	Rating   float64            `bson:"rating" json:"rating"`
	Type     string             `bson:"type" json:"type"`
	Image    string             `bson:"image" json:"image"`
}
