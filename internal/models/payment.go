package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment is written only together with the purchase it pays for.
// PackageID holds the purchase id, matching the field name clients already send.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PackageID     string             `bson:"packageId" json:"packageId"`
	Email         string             `bson:"email" json:"email"`
	Amount        float64            `bson:"amount" json:"amount"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Status        string             `bson:"status,omitempty" json:"status,omitempty"`
	PackageName   string             `bson:"packageName,omitempty" json:"packageName,omitempty"`
	PaymentMethod string             `bson:"paymentMethod" json:"paymentMethod"`
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	PaidAt        time.Time          `bson:"paidAt" json:"paidAt"`
}
