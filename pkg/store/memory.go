package store

import (
	"slices"
	"sync"
	"time"

	"github.com/segmentio/ksuid"

	"jongubooks/pkg/schema"
)

// Memory is the in-process Store. The outer RWMutex only guards the index and
// insertion order; each entry carries its own lock so that appends to one
// story never block work on another. Page numbers are assigned under the
// entry lock, so sequential and concurrent appends both yield 1..N.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]*entry
	order   []string
}

type entry struct {
	mu      sync.Mutex
	story   schema.Story
	deleted bool
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]*entry)}
}

func (m *Memory) Create(story schema.Story) schema.Story {
	story.ID = ksuid.New().String()
	story.CreatedAt = time.Now().UTC()
	applyDefaults(&story)
	assignOwnedIDs(&story)

	m.mu.Lock()
	m.entries[story.ID] = &entry{story: story}
	m.order = append(m.order, story.ID)
	m.mu.Unlock()

	return cloneStory(story)
}

func (m *Memory) Get(id string) (schema.Story, error) {
	e, err := m.lookup(id)
	if err != nil {
		return schema.Story{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return schema.Story{}, ErrNotFound
	}
	return cloneStory(e.story), nil
}

func (m *Memory) List() []schema.Story {
	m.mu.RLock()
	ordered := make([]*entry, 0, len(m.order))
	for _, id := range m.order {
		if e, ok := m.entries[id]; ok {
			ordered = append(ordered, e)
		}
	}
	m.mu.RUnlock()

	out := make([]schema.Story, 0, len(ordered))
	for _, e := range ordered {
		e.mu.Lock()
		if !e.deleted {
			out = append(out, cloneStory(e.story))
		}
		e.mu.Unlock()
	}
	return out
}

// Replace overwrites every field wholesale except the identifier and creation
// timestamp, which always come from the stored record.
func (m *Memory) Replace(id string, story schema.Story) (schema.Story, error) {
	e, err := m.lookup(id)
	if err != nil {
		return schema.Story{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return schema.Story{}, ErrNotFound
	}
	story.ID = e.story.ID
	story.CreatedAt = e.story.CreatedAt
	applyDefaults(&story)
	assignOwnedIDs(&story)
	e.story = story
	return cloneStory(e.story), nil
}

func (m *Memory) Delete(id string) (schema.Story, error) {
	e, err := m.lookup(id)
	if err != nil {
		return schema.Story{}, err
	}
	e.mu.Lock()
	if e.deleted {
		e.mu.Unlock()
		return schema.Story{}, ErrNotFound
	}
	e.deleted = true
	deleted := e.story
	e.mu.Unlock()

	m.mu.Lock()
	delete(m.entries, id)
	if i := slices.Index(m.order, id); i >= 0 {
		m.order = slices.Delete(m.order, i, i+1)
	}
	m.mu.Unlock()

	return cloneStory(deleted), nil
}

func (m *Memory) AppendCharacter(id string, character schema.Character) (schema.Character, error) {
	e, err := m.lookup(id)
	if err != nil {
		return schema.Character{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return schema.Character{}, ErrNotFound
	}
	character.ID = ksuid.New().String()
	if character.Role == "" {
		character.Role = schema.DefaultRole
	}
	e.story.Characters = append(slices.Clip(e.story.Characters), character)
	return character, nil
}

// AppendPage numbers the page as count+1 under the story's lock. Numbers are
// not recomputed when pages are removed by a later Replace, matching the
// documented resource semantics.
func (m *Memory) AppendPage(id string, page schema.Page) (schema.Page, error) {
	e, err := m.lookup(id)
	if err != nil {
		return schema.Page{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.deleted {
		return schema.Page{}, ErrNotFound
	}
	page.ID = ksuid.New().String()
	page.PageNumber = len(e.story.Pages) + 1
	e.story.Pages = append(slices.Clip(e.story.Pages), page)
	return page, nil
}

func (m *Memory) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *Memory) lookup(id string) (*entry, error) {
	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

func applyDefaults(s *schema.Story) {
	if s.AgeRange == "" {
		s.AgeRange = schema.DefaultAgeRange
	}
	if s.Tone == "" {
		s.Tone = schema.DefaultTone
	}
	if s.Status == "" {
		s.Status = schema.DefaultStatus
	}
	if s.Author == "" {
		s.Author = schema.DefaultAuthor
	}
	if s.Characters == nil {
		s.Characters = []schema.Character{}
	}
	if s.Pages == nil {
		s.Pages = []schema.Page{}
	}
}

// assignOwnedIDs fills in identifiers for characters and pages that arrive
// embedded in a create or replace payload.
func assignOwnedIDs(s *schema.Story) {
	for i := range s.Characters {
		if s.Characters[i].ID == "" {
			s.Characters[i].ID = ksuid.New().String()
		}
		if s.Characters[i].Role == "" {
			s.Characters[i].Role = schema.DefaultRole
		}
	}
	for i := range s.Pages {
		if s.Pages[i].ID == "" {
			s.Pages[i].ID = ksuid.New().String()
		}
	}
}

func cloneStory(s schema.Story) schema.Story {
	s.Characters = slices.Clone(s.Characters)
	s.Pages = slices.Clone(s.Pages)
	return s
}
