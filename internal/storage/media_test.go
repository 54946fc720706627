package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublicURL(t *testing.T) {
	c := &Client{publicURL: "https://cdn.example.com/media"}
	assert.Equal(t, "https://cdn.example.com/media/videos/u1/v1/video.mp4", c.PublicURL("videos/u1/v1/video.mp4"))
}

func TestKeyFromURL(t *testing.T) {
	c := &Client{publicURL: "https://cdn.example.com/media"}

	key, ok := c.KeyFromURL("https://cdn.example.com/media/avatars/jane/avatar.png")
	assert.True(t, ok)
	assert.Equal(t, "avatars/jane/avatar.png", key)

	_, ok = c.KeyFromURL("https://other-cdn.example.com/avatars/jane/avatar.png")
	assert.False(t, ok)

	_, ok = c.KeyFromURL("https://cdn.example.com/media/")
	assert.False(t, ok)

	_, ok = c.KeyFromURL("")
	assert.False(t, ok)
}

func TestKeyFromURLRoundTrip(t *testing.T) {
	c := &Client{publicURL: "https://cdn.example.com/media"}

	url := c.PublicURL("videos/u1/v1/thumbnail.jpg")
	key, ok := c.KeyFromURL(url)

	assert.True(t, ok)
	assert.Equal(t, "videos/u1/v1/thumbnail.jpg", key)
}
