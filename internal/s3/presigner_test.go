package s3

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCoverObjectKey(t *testing.T) {
	p := &FilePresigner{}

	key := p.CoverObjectKey("tutor@example.com")

	require.True(t, strings.HasPrefix(key, "material-covers/tutor@example.com/"))
	require.True(t, strings.HasSuffix(key, ".jpg"))

	// every call mints a fresh key
	require.NotEqual(t, key, p.CoverObjectKey("tutor@example.com"))
}

func TestPublicURL(t *testing.T) {
	p := &FilePresigner{BucketName: "studysphere-media", endpoint: "https://s3.example.com"}

	url := p.PublicURL("material-covers/tutor@example.com/abc.jpg")

	require.Equal(t, "https://s3.example.com/studysphere-media/material-covers/tutor@example.com/abc.jpg", url)
}
