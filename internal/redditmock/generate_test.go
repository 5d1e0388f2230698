package redditmock

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countComments(comments []Comment) int {
	n := len(comments)
	for _, c := range comments {
		n += countComments(c.Replies)
	}
	return n
}

func TestGenerator_Deterministic(t *testing.T) {
	a := NewGenerator(42).Posts(5)
	b := NewGenerator(42).Posts(5)
	assert.Equal(t, a, b)
	assert.Equal(t, "p1", a[0].ID)
	assert.Equal(t, "p5", a[4].ID)
}

func TestGenerator_Thread(t *testing.T) {
	thread := NewGenerator(1).Thread("t3_x", 3, 3)
	assert.Equal(t, 3+9+27, countComments(thread))

	assert.Nil(t, NewGenerator(1).Thread("t3_x", 0, 3))
	assert.Nil(t, NewGenerator(1).Thread("t3_x", 3, 0))

	var listing map[string]any
	require.NoError(t, json.Unmarshal([]byte(CommentsJSON(thread)), &listing))
	assert.Equal(t, "Listing", listing["kind"])
}
