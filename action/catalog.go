package action

import (
	"fmt"

	"github.com/milk9111/tokenduel/token"
)

// Catalog is an ordered set of actions addressed by name.
type Catalog struct {
	actions []Action
	index   map[string]int
}

// NewCatalog builds a catalog, rejecting blank and duplicate names.
func NewCatalog(actions ...Action) (*Catalog, error) {
	c := &Catalog{index: make(map[string]int, len(actions))}
	for _, a := range actions {
		if a.Name == "" {
			return nil, fmt.Errorf("action: blank action name")
		}
		if _, dup := c.index[a.Name]; dup {
			return nil, fmt.Errorf("action: duplicate action %q", a.Name)
		}
		c.index[a.Name] = len(c.actions)
		c.actions = append(c.actions, a)
	}
	return c, nil
}

// Lookup returns the action called name.
func (c *Catalog) Lookup(name string) (Action, bool) {
	if c == nil {
		return Action{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Action{}, false
	}
	return c.actions[i], true
}

// Actions returns the actions in catalog order.
func (c *Catalog) Actions() []Action {
	if c == nil {
		return nil
	}
	return append([]Action(nil), c.actions...)
}

// Legal returns, in catalog order, the actions source may perform against target.
func (c *Catalog) Legal(source, target *token.Ledger) []Action {
	if c == nil {
		return nil
	}
	var out []Action
	for _, a := range c.actions {
		if a.CanPerform(source, target) {
			out = append(out, a)
		}
	}
	return out
}

// Len returns the number of actions.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.actions)
}
