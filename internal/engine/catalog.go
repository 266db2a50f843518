package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/petrijr/machina/pkg/api"
)

// Catalog holds validated machines by name so application code can
// instantiate them without threading Machine values around. It is
// goroutine-safe; the machines themselves are immutable.
type Catalog struct {
	mu     sync.RWMutex
	byName map[string]api.Machine
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		byName: make(map[string]api.Machine),
	}
}

// Register adds a machine under its name. Registering a second machine with
// the same name is an error.
func (c *Catalog) Register(m api.Machine) error {
	if m == nil {
		return fmt.Errorf("machina: cannot register nil machine")
	}
	if m.Name() == "" {
		return fmt.Errorf("machina: cannot register machine without a name")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[m.Name()]; exists {
		return fmt.Errorf("machina: machine %q already registered", m.Name())
	}
	c.byName[m.Name()] = m
	return nil
}

// Get returns the machine registered under name.
func (c *Catalog) Get(name string) (api.Machine, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("machina: unknown machine %q", name)
	}
	return m, nil
}

// Instantiate looks up name and binds a new instance to data.
func (c *Catalog) Instantiate(name string, data any) (api.Instance, error) {
	m, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return m.Instantiate(data), nil
}

// Names returns the registered machine names, sorted.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.byName))
	for name := range c.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
