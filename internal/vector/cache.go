package vector

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hyperjump/wordsim/pkg/utils"
)

// unitCache keeps recently used unit vectors so repeated queries against a
// large model do not renormalise the same rows. A nil cache computes every time.
type unitCache struct {
	cache *lru.Cache[string, []float64]
}

func newUnitCache(size int) (*unitCache, error) {
	if size <= 0 {
		return nil, nil
	}
	c, err := lru.New[string, []float64](size)
	if err != nil {
		return nil, fmt.Errorf("create unit vector cache: %w", err)
	}
	return &unitCache{cache: c}, nil
}

// get returns the unit vector for token, computing it from raw on a miss.
func (c *unitCache) get(token string, raw []float32) []float64 {
	if c == nil {
		return utils.UnitVector(raw)
	}
	if u, ok := c.cache.Get(token); ok {
		return u
	}
	u := utils.UnitVector(raw)
	c.cache.Add(token, u)
	return u
}

func (c *unitCache) len() int {
	if c == nil {
		return 0
	}
	return c.cache.Len()
}
