// Package services holds the request handling core: ownership checks, validation
// and the joins between posts and users.
package services

import (
	"io"

	"bloglist/app/models"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CallerResolver turns a raw bearer token into the caller's user id.
type CallerResolver interface {
	ResolveCaller(raw string) (primitive.ObjectID, error)
}

// TokenIssuer signs a session token for a user.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
}

// PasswordHasher hashes new passwords and checks login attempts.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) (bool, error)
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
