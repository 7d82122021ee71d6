package auth

import (
	"testing"

	"bloglist/app/models"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCanMutate(t *testing.T) {
	owner := models.NewID()
	sameOwner, err := models.ParseID(owner.Hex())
	assert.NoError(t, err)

	assert.True(t, CanMutate(owner, owner))
	assert.True(t, CanMutate(owner, sameOwner), "ids parsed from the same hex are equal")
	assert.False(t, CanMutate(owner, models.NewID()))
	assert.False(t, CanMutate(primitive.NilObjectID, primitive.NilObjectID))
}

func TestHasher(t *testing.T) {
	h := Hasher{Cost: 4}
	hash, err := h.Hash("sekret")
	assert.NoError(t, err)
	assert.NotEqual(t, "sekret", hash)

	ok, err := h.Compare(hash, "sekret")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Compare(hash, "wrong")
	assert.NoError(t, err)
	assert.False(t, ok)
}
