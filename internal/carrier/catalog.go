package carrier

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// NotFoundError is returned when a carrier id is not in the catalog.
type NotFoundError struct {
	message string
}

// Error returns the error text.
func (e *NotFoundError) Error() string {
	return e.message
}

// NewNotFoundError creates a NotFoundError for id.
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{message: "carrier not found: " + id}
}

// Catalog is an immutable, in-memory Provider.
// It is safe for concurrent use.
type Catalog struct {
	carriers []Carrier
	index    map[string]int
}

type catalogFile struct {
	Carriers []Carrier `yaml:"carriers"`
}

// NewCatalog validates carriers and builds a catalog over them.
// Every carrier needs an id and a name, and ids must be unique.
func NewCatalog(carriers []Carrier) (*Catalog, error) {
	catalog := Catalog{
		carriers: make([]Carrier, len(carriers)),
		index:    make(map[string]int, len(carriers)),
	}
	copy(catalog.carriers, carriers)

	for i, c := range catalog.carriers {
		if c.ID == "" {
			return nil, fmt.Errorf("carriers[%d].id: must be specified", i)
		}
		if c.Name == "" {
			return nil, fmt.Errorf("carriers[%d].name: must be specified", i)
		}
		if _, exists := catalog.index[c.ID]; exists {
			return nil, fmt.Errorf("carriers[%d].id: duplicate id '%s'", i, c.ID)
		}
		catalog.index[c.ID] = i
	}

	return &catalog, nil
}

// Parse reads a YAML catalog of the form
//
//	carriers:
//	  - id: dhl-001
//	    name: DHL
//	    delivery_time: 3
//	    ...
//
// Unknown keys are rejected. Empty content yields an empty catalog.
func Parse(content []byte) (*Catalog, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	var file catalogFile
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing carrier catalog: %w", err)
	}

	return NewCatalog(file.Carriers)
}

// LoadFromFile reads and parses the catalog at path.
func LoadFromFile(path string) (*Catalog, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading carrier catalog: %w", err)
	}

	return Parse(content)
}

// Carriers returns all carriers in declaration order.
func (c *Catalog) Carriers(ctx context.Context) ([]Carrier, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return slices.Clone(c.carriers), nil
}

// Carrier looks a carrier up by id.
func (c *Catalog) Carrier(ctx context.Context, id string) (Carrier, error) {
	if err := ctx.Err(); err != nil {
		return Carrier{}, err
	}

	i, ok := c.index[id]
	if !ok {
		return Carrier{}, NewNotFoundError(id)
	}

	return c.carriers[i], nil
}

// Len returns the number of carriers.
func (c *Catalog) Len() int {
	return len(c.carriers)
}
