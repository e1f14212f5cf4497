package store

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyToggleAddsMember(t *testing.T) {
	likedBy, count, liked := applyToggle([]string{}, 0, "u1")

	assert.True(t, liked)
	assert.Equal(t, []string{"u1"}, likedBy)
	assert.Equal(t, int64(1), count)
}

func TestApplyToggleRemovesMember(t *testing.T) {
	likedBy, count, liked := applyToggle([]string{"u1", "u2"}, 2, "u1")

	assert.False(t, liked)
	assert.Equal(t, []string{"u2"}, likedBy)
	assert.Equal(t, int64(1), count)
}

func TestApplyToggleIsSelfInverse(t *testing.T) {
	original := []string{"u2", "u3"}

	likedBy, count, liked := applyToggle(original, 2, "u1")
	require.True(t, liked)

	likedBy, count, liked = applyToggle(likedBy, count, "u1")
	assert.False(t, liked)
	assert.Equal(t, original, likedBy)
	assert.Equal(t, int64(2), count)
}

func TestApplyToggleCountNeverNegative(t *testing.T) {
	// A drifted document: member present but counter already zero.
	likedBy, count, liked := applyToggle([]string{"u1"}, 0, "u1")

	assert.False(t, liked)
	assert.Empty(t, likedBy)
	assert.Equal(t, int64(0), count)
}

func TestApplyToggleRemovesDuplicates(t *testing.T) {
	// Duplicates should not exist, but removal still clears them all and
	// decrements once.
	likedBy, count, _ := applyToggle([]string{"u1", "u1", "u2"}, 3, "u1")

	assert.Equal(t, []string{"u2"}, likedBy)
	assert.Equal(t, int64(2), count)
}

func TestApplyToggleDoesNotMutateInput(t *testing.T) {
	original := []string{"u1", "u2"}
	applyToggle(original, 2, "u3")
	applyToggle(original, 2, "u1")

	assert.Equal(t, []string{"u1", "u2"}, original)
}

// Serialized toggles from distinct users must converge: the counter always
// matches the membership cardinality. The store's transaction serializes
// concurrent calls, so a random interleaving is equivalent to some sequence.
func TestToggleSequenceConvergence(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	likedBy := []string{}
	var count int64

	users := make([]string, 20)
	for i := range users {
		users[i] = fmt.Sprintf("user-%d", i)
	}

	for i := 0; i < 500; i++ {
		user := users[rng.Intn(len(users))]
		likedBy, count, _ = applyToggle(likedBy, count, user)

		require.Equal(t, int64(len(likedBy)), count, "step %d", i)
		require.GreaterOrEqual(t, count, int64(0))
	}
}

func TestClassifyTxnErrorNotFound(t *testing.T) {
	err := classifyTxnError(fmt.Errorf("%w", ErrNotFound))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClassifyTxnErrorDefaultsToTransport(t *testing.T) {
	err := classifyTxnError(fmt.Errorf("connection reset"))
	assert.ErrorIs(t, err, ErrTransport)
}
