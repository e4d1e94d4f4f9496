package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentStatusPaid = "paid"

// Purchase is a package acquired by a user ("my package"). At most one per
// (userEmail, packageId), enforced by a unique index.
type Purchase struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail     string             `bson:"userEmail" json:"userEmail"`
	PackageID     string             `bson:"packageId" json:"packageId"`
	PackageTitle  string             `bson:"packageTitle,omitempty" json:"packageTitle,omitempty"`
	PackageImage  string             `bson:"packageImage,omitempty" json:"packageImage,omitempty"`
	Price         float64            `bson:"price,omitempty" json:"price,omitempty"`
	PaymentStatus string             `bson:"payment_status,omitempty" json:"payment_status,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// Bookmark shares the purchase's natural key and uniqueness rule.
type Bookmark struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserEmail    string             `bson:"userEmail" json:"userEmail"`
	PackageID    string             `bson:"packageId" json:"packageId"`
	PackageTitle string             `bson:"packageTitle,omitempty" json:"packageTitle,omitempty"`
	PackageImage string             `bson:"packageImage,omitempty" json:"packageImage,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
