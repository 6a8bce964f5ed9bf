// Package refcache records the last issued reference-image URL per story and
// character name so later illustration prompts can cite a character's
// likeness. It is independent of the story store and is only consulted by the
// page-image generation path.
package refcache

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// Reference is one cached likeness.
type Reference struct {
	StoryID  string    `json:"story_id"`
	Name     string    `json:"name"`
	URL      string    `json:"url"`
	StoredAt time.Time `json:"stored_at"`
}

// Cache wraps go-cache with story+name keying. Entries never expire and are
// never garbage-collected.
type Cache struct {
	c *cache.Cache
}

func New() *Cache {
	return &Cache{c: cache.New(cache.NoExpiration, 0)}
}

func key(storyID, name string) string {
	return storyID + ":" + strings.ToLower(strings.TrimSpace(name))
}

// Store records the reference, overwriting any earlier URL for the same
// story and character name.
func (r *Cache) Store(storyID, name, url string) Reference {
	ref := Reference{
		StoryID:  storyID,
		Name:     strings.TrimSpace(name),
		URL:      url,
		StoredAt: time.Now().UTC(),
	}
	r.c.Set(key(storyID, name), ref, cache.NoExpiration)
	return ref
}

func (r *Cache) Get(storyID, name string) (Reference, bool) {
	v, ok := r.c.Get(key(storyID, name))
	if !ok {
		return Reference{}, false
	}
	return v.(Reference), true
}

// ForStory returns name→URL for every reference cached under the story.
func (r *Cache) ForStory(storyID string) map[string]string {
	out := make(map[string]string)
	for _, item := range r.c.Items() {
		ref, ok := item.Object.(Reference)
		if !ok {
			continue
		}
		if ref.StoryID == storyID {
			out[ref.Name] = ref.URL
		}
	}
	return out
}
