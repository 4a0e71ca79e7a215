package native

import (
	"fmt"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	E "github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"tfsp/dataset"
)

const defaultCacheSize = 8

// DatasetCache keeps recently parsed datasets. Entries are keyed by path,
// size and modification time, so a rewritten sample half is parsed again.
type DatasetCache struct {
	cache *lru.Cache
	mu    sync.Mutex
}

func NewDatasetCache(size int) (*DatasetCache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New(size)
	if err != nil {
		return nil, E.Wrap(err, "failed to create dataset cache")
	}
	return &DatasetCache{cache: c}, nil
}

func (c *DatasetCache) Load(path string) (*dataset.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, E.Wrapf(err, "failed to stat dataset %s", path)
	}
	key := fmt.Sprintf("%s|%d|%d", path, info.Size(), info.ModTime().UnixNano())

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.cache.Get(key); ok {
		return v.(*dataset.Dataset), nil
	}
	ds, err := dataset.Load(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, ds)
	log.WithFields(log.Fields{"dataset": path, "transactions": ds.Size()}).Debug("Cached parsed dataset.")
	return ds, nil
}
