package fruit

import (
	"errors"
	"fmt"
	"image/color"
)

var (
	ErrEmptyCatalog   = errors.New("fruit: catalog is empty")
	ErrDuplicateLabel = errors.New("fruit: duplicate tier label")
	ErrInvalidTier    = errors.New("fruit: invalid tier")
)

// Tier is one rank in the fruit size progression.
type Tier struct {
	Label  string
	Radius float64
	Color  color.Color
	// Sprite is an assets-relative image path. Empty means draw a plain circle.
	Sprite string
}

// Catalog is the ordered list of tiers, smallest first. Merging two pieces of
// tier i yields tier i+1; the last tier has no successor.
type Catalog struct {
	tiers []Tier
	index map[string]int
}

// NewCatalog validates tiers and builds a catalog from them.
func NewCatalog(tiers []Tier) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		tiers: append([]Tier(nil), tiers...),
		index: make(map[string]int, len(tiers)),
	}
	for i, t := range c.tiers {
		if t.Label == "" {
			return nil, fmt.Errorf("%w: tier %d has no label", ErrInvalidTier, i)
		}
		if t.Radius <= 0 {
			return nil, fmt.Errorf("%w: tier %q radius %v", ErrInvalidTier, t.Label, t.Radius)
		}
		if i > 0 && t.Radius <= c.tiers[i-1].Radius {
			return nil, fmt.Errorf("%w: tier %q radius %v not larger than %q", ErrInvalidTier, t.Label, t.Radius, c.tiers[i-1].Label)
		}
		if _, dup := c.index[t.Label]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, t.Label)
		}
		if c.tiers[i].Color == nil {
			c.tiers[i].Color = color.White
		}
		c.index[t.Label] = i
	}
	return c, nil
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.tiers)
}

// At returns the tier at index i. It panics when i is out of range, like a
// slice index.
func (c *Catalog) At(i int) Tier {
	return c.tiers[i]
}

// Index returns the position of the tier with the given label.
func (c *Catalog) Index(label string) (int, bool) {
	if c == nil {
		return 0, false
	}
	i, ok := c.index[label]
	return i, ok
}

// Successor returns the tier a merge of tier i produces. It reports false for
// the terminal tier and for out-of-range indices.
func (c *Catalog) Successor(i int) (Tier, bool) {
	if c == nil || i < 0 || i+1 >= len(c.tiers) {
		return Tier{}, false
	}
	return c.tiers[i+1], true
}

// IsTerminal reports whether i is the largest tier.
func (c *Catalog) IsTerminal(i int) bool {
	return c != nil && i == len(c.tiers)-1
}

// Tiers returns a copy of the ordered tiers.
func (c *Catalog) Tiers() []Tier {
	if c == nil {
		return nil
	}
	return append([]Tier(nil), c.tiers...)
}
