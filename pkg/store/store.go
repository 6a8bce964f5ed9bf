// Package store holds story records in memory. All mutating operations are
// serialized per story identifier; operations on different stories proceed
// concurrently.
package store

import (
	"errors"

	"jongubooks/pkg/schema"
)

// ErrNotFound is returned whenever a referenced story identifier is absent.
var ErrNotFound = errors.New("story not found")

// Store is the resource contract the HTTP layer depends on. Implementations
// must assign identifiers and page numbers themselves; caller-supplied values
// are ignored.
type Store interface {
	Create(story schema.Story) schema.Story
	Get(id string) (schema.Story, error)
	List() []schema.Story
	Replace(id string, story schema.Story) (schema.Story, error)
	Delete(id string) (schema.Story, error)
	AppendCharacter(id string, character schema.Character) (schema.Character, error)
	AppendPage(id string, page schema.Page) (schema.Page, error)
	Count() int
}
