package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

// RecordResult is returned by the purchase-payment flow.
type RecordResult struct {
	InsertedID primitive.ObjectID `json:"insertedId"`
	Update     UpdateResult       `json:"updateResult"`
}
