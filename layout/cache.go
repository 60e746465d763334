package layout

import (
	"slices"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache parses layouts, remembering the most recent ones. Hosts see the
// same serial over and over from live views.
type Cache struct {
	parsed *lru.Cache[uint64, Layout]
}

func NewCache(size int) (*Cache, error) {
	c, err := lru.New[uint64, Layout](size)
	if err != nil {
		return nil, err
	}
	return &Cache{parsed: c}, nil
}

func cacheKey(serial string, strs []string) uint64 {
	d := xxhash.New()
	d.WriteString(serial)
	for _, s := range strs {
		d.Write([]byte{0})
		d.WriteString(s)
	}
	return d.Sum64()
}

// Parse is Parse with a lookup first. Malformed layouts are not cached.
func (c *Cache) Parse(serial string, strs []string) (Layout, error) {
	key := cacheKey(serial, strs)
	if l, ok := c.parsed.Get(key); ok {
		l.Primitives = slices.Clone(l.Primitives)
		l.Strings = slices.Clone(l.Strings)
		return l, nil
	}
	l, err := Parse(serial, strs)
	if err != nil {
		return Layout{}, err
	}
	c.parsed.Add(key, l)
	l.Primitives = slices.Clone(l.Primitives)
	l.Strings = slices.Clone(l.Strings)
	return l, nil
}

func (c *Cache) Len() int { return c.parsed.Len() }
