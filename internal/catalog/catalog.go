package catalog

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Catalog is an immutable, id-indexed set of library assets.
type Catalog struct {
	assets []Asset
	byID   map[string]Asset
}

// New builds a catalog from the given assets. Entries without a display
// name get one derived from their id. Duplicate or empty ids are rejected.
func New(assets []Asset) (*Catalog, error) {
	c := &Catalog{
		assets: make([]Asset, 0, len(assets)),
		byID:   make(map[string]Asset, len(assets)),
	}
	for _, a := range assets {
		if a.ID == "" {
			return nil, fmt.Errorf("catalog entry with empty id")
		}
		if !a.Type.Valid() {
			return nil, fmt.Errorf("catalog entry %q: unknown type %q", a.ID, a.Type)
		}
		if _, exists := c.byID[a.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog id %q", a.ID)
		}
		if a.Name == "" {
			a.Name = deriveName(a.ID)
		}
		c.assets = append(c.assets, a)
		c.byID[a.ID] = a
	}
	return c, nil
}

// ByID looks up an asset by library id.
func (c *Catalog) ByID(id string) (Asset, bool) {
	a, ok := c.byID[id]
	return a, ok
}

// Assets returns all entries in declaration order.
func (c *Catalog) Assets() []Asset {
	out := make([]Asset, len(c.assets))
	copy(out, c.assets)
	return out
}

// ByType returns the entries of a single category in declaration order.
func (c *Catalog) ByType(t AssetType) []Asset {
	return lo.Filter(c.assets, func(a Asset, _ int) bool {
		return a.Type == t
	})
}

// Search returns the entries of a category whose name contains the query,
// case-insensitively. An empty query matches the whole category.
func (c *Catalog) Search(t AssetType, query string) []Asset {
	q := strings.ToLower(strings.TrimSpace(query))
	return lo.Filter(c.assets, func(a Asset, _ int) bool {
		if a.Type != t {
			return false
		}
		return q == "" || strings.Contains(strings.ToLower(a.Name), q)
	})
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.assets)
}

var titleCaser = cases.Title(language.English)

// deriveName turns an asset id like "char-astronaut" into a presentable
// display name.
func deriveName(id string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(id)
	return titleCaser.String(words)
}
