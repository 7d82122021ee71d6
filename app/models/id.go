package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseID parses the hex form of an object id.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrMalformedID, s)
	}
	return id, nil
}

// NewID returns a fresh object id. Ids created later sort after earlier ones.
func NewID() primitive.ObjectID {
	return primitive.NewObjectID()
}
