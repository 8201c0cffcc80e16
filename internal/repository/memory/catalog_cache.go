package memory

import (
	"sync"
	"time"

	"workflow-hub-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

const (
	workflowsKey  = "catalog:workflows"
	categoriesKey = "catalog:categories"
)

// CatalogCache holds the last full read of the catalog. Entries expire after
// ttl and are dropped early whenever an import lands.
//
// Readers take Generation before querying and pass it to the setters; a read
// that straddles an Invalidate is then discarded instead of caching stale rows.
type CatalogCache struct {
	mu         sync.Mutex
	generation uint64
	cache      *cache.Cache
}

func NewCatalogCache(ttl time.Duration) *CatalogCache {
	return &CatalogCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *CatalogCache) Workflows() ([]*entity.Workflow, bool) {
	if x, found := c.cache.Get(workflowsKey); found {
		return x.([]*entity.Workflow), true
	}
	return nil, false
}

func (c *CatalogCache) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// SetWorkflows stores workflows read at generation gen and reports whether
// they were kept.
func (c *CatalogCache) SetWorkflows(gen uint64, workflows []*entity.Workflow) bool {
	return c.set(gen, workflowsKey, workflows)
}

func (c *CatalogCache) Categories() ([]*entity.WorkflowCategory, bool) {
	if x, found := c.cache.Get(categoriesKey); found {
		return x.([]*entity.WorkflowCategory), true
	}
	return nil, false
}

func (c *CatalogCache) SetCategories(gen uint64, categories []*entity.WorkflowCategory) bool {
	return c.set(gen, categoriesKey, categories)
}

func (c *CatalogCache) set(gen uint64, key string, value interface{}) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return false
	}
	c.cache.Set(key, value, cache.DefaultExpiration)
	return true
}

func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.cache.Flush()
}
