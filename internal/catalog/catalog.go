package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

// ErrNotFound is returned when no character matches the requested id
var ErrNotFound = errors.New("character not found")

// Character is a read-only catalog record. Records are loaded once at
// startup and never mutated afterward.
type Character struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	ShortDescription string   `json:"short_description"`
	LongDescription  string   `json:"long_description,omitempty"`
	Personality      string   `json:"personality,omitempty"`
	Traits           []string `json:"traits,omitempty"`
	Tags             []string `json:"tags,omitempty"`
	Greeting         string   `json:"greeting"`
	Responses        []string `json:"responses"`
}

// Directory is the static character lookup. A real deployment would back
// this with a catalog service; everything downstream depends only on ByID.
type Directory struct {
	byID  map[int]*Character
	order []int
}

// Load reads the characters file at path. A missing file falls back to the
// built-in roster so a fresh checkout works without any data setup.
func Load(path string) (*Directory, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return New(builtinCharacters())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read characters file: %w", err)
	}

	var characters []Character
	if err := json.Unmarshal(data, &characters); err != nil {
		return nil, fmt.Errorf("failed to parse characters file: %w", err)
	}

	return New(characters)
}

// New builds a directory from records, validating each one
func New(characters []Character) (*Directory, error) {
	d := &Directory{byID: make(map[int]*Character, len(characters))}

	for i := range characters {
		c := characters[i]
		if c.ID <= 0 {
			return nil, fmt.Errorf("character %q has invalid id %d", c.Name, c.ID)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("character %d has no name", c.ID)
		}
		if c.Greeting == "" {
			return nil, fmt.Errorf("character %q has no greeting", c.Name)
		}
		if len(c.Responses) == 0 {
			return nil, fmt.Errorf("character %q has an empty response pool", c.Name)
		}
		if _, dup := d.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate character id %d", c.ID)
		}
		d.byID[c.ID] = &c
		d.order = append(d.order, c.ID)
	}

	sort.Ints(d.order)
	return d, nil
}

// ByID returns the character with the given id, or ErrNotFound
func (d *Directory) ByID(id int) (*Character, error) {
	c, ok := d.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return c, nil
}

// All returns every character ordered by id
func (d *Directory) All() []*Character {
	out := make([]*Character, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id])
	}
	return out
}

// Len returns the number of characters in the directory
func (d *Directory) Len() int {
	return len(d.byID)
}
