package utils

import (
	"os"
	"testing"

	"github.com/streamtube-app/streamtube/utils/dotenv"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	dotenv.LoadDotEnvsInTests()
	os.Exit(m.Run())
}

func TestContainsString(t *testing.T) {
	assert.True(t, ContainsString([]string{"a", "b"}, "a"))
	assert.False(t, ContainsString([]string{"a", "b"}, "c"))
	assert.False(t, ContainsString(nil, "a"))
}

func TestRandomAlphabetString(t *testing.T) {
	s := RandomAlphabetString(8)
	assert.Len(t, s, 8)
	for _, r := range s {
		assert.True(t, r >= 'a' && r <= 'z')
	}
}

func TestGetFileExtWithDot(t *testing.T) {
	assert.Equal(t, ".mp4", GetFileExtWithDot("movie.mp4"))
	assert.Equal(t, ".png", GetFileExtWithDot("Thumb.PNG"))
	assert.Equal(t, "", GetFileExtWithDot("noext"))
	assert.Equal(t, "", GetFileExtWithDot("trailing."))
}

func TestRedisKeyParser(t *testing.T) {
	parser := redisKeyParser{delimiter: "__"}

	key, err := parser.encodeUploadKey("abc123")
	assert.Nil(t, err)
	assert.Equal(t, "upload__abc123", key)

	_, err = parser.encodeUploadKey("")
	assert.NotNil(t, err)

	// Ids containing the delimiter would make keys ambiguous.
	_, err = parser.encodeUploadKey("a__b")
	assert.NotNil(t, err)
}
