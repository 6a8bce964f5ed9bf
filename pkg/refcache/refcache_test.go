package refcache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreAndGet(t *testing.T) {
	c := New()
	c.Store("story-1", "Pip", "https://img.example/pip.png")

	ref, ok := c.Get("story-1", "Pip")
	require.True(t, ok)
	assert.Equal(t, "story-1", ref.StoryID)
	assert.Equal(t, "Pip", ref.Name)
	assert.Equal(t, "https://img.example/pip.png", ref.URL)
	assert.False(t, ref.StoredAt.IsZero())
}

func TestGetIsCaseInsensitiveOnName(t *testing.T) {
	c := New()
	c.Store("story-1", "Pip", "https://img.example/pip.png")

	_, ok := c.Get("story-1", "pip")
	assert.True(t, ok)
	_, ok = c.Get("story-1", "  PIP  ")
	assert.True(t, ok)
}

func TestOverwriteReplacesURL(t *testing.T) {
	c := New()
	c.Store("story-1", "Pip", "https://img.example/v1.png")
	c.Store("story-1", "pip", "https://img.example/v2.png")

	ref, ok := c.Get("story-1", "Pip")
	require.True(t, ok)
	assert.Equal(t, "https://img.example/v2.png", ref.URL)
}

func TestStoriesAreIsolated(t *testing.T) {
	c := New()
	c.Store("story-1", "Pip", "https://img.example/pip.png")

	_, ok := c.Get("story-2", "Pip")
	assert.False(t, ok)
}

func TestForStory(t *testing.T) {
	c := New()
	c.Store("story-1", "Pip", "https://img.example/pip.png")
	c.Store("story-1", "Momo", "https://img.example/momo.png")
	c.Store("story-2", "Luna", "https://img.example/luna.png")

	refs := c.ForStory("story-1")
	assert.Equal(t, map[string]string{
		"Pip":  "https://img.example/pip.png",
		"Momo": "https://img.example/momo.png",
	}, refs)

	assert.Empty(t, c.ForStory("story-3"))
}
