package auth

import "go.mongodb.org/mongo-driver/bson/primitive"

// CanMutate reports whether caller may update or delete a post owned by owner.
// A post without a recorded owner can be changed by no one.
func CanMutate(owner, caller primitive.ObjectID) bool {
	return !owner.IsZero() && owner == caller
}
