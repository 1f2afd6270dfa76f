package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestFindByID_MalformedID(t *testing.T) {
	t.Parallel()

	// A malformed id is treated as an unknown one; the collection is never
	// queried.
	r := &MongoUserRepository{}

	for _, id := range []string{"", "not-a-hex-id", "abc", "zzzzzzzzzzzzzzzzzzzzzzzz"} {
		user, err := r.FindByID(context.Background(), id)
		require.NoError(t, err, "id %q", id)
		assert.Nil(t, user, "id %q", id)
	}
}

func TestUserDocToUser(t *testing.T) {
	t.Parallel()

	oid := bson.NewObjectID()
	doc := &userDoc{
		ID:       oid,
		Username: "alice01",
		Password: "$2a$10$hash",
	}

	user := doc.toUser()
	assert.Equal(t, oid.Hex(), user.ID)
	assert.Equal(t, "alice01", user.Username)
	assert.Equal(t, "$2a$10$hash", user.PasswordHash)
}
