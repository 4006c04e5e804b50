// Package cache holds objects that are expensive to build and safe to
// share between goroutines, such as compiled strategy scripts. Objects
// live for the life of the process.
package cache

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type loadFunc func(key string) (any, error)

type cache struct {
	sync.Mutex
	objects map[string]any
}

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache = &cache{objects: map[string]any{}}

func (c *cache) get(key string, load loadFunc) (any, error) {
	c.Lock()
	defer c.Unlock()
	if obj, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting-obj-from-cache")
		return obj, nil
	}
	log.Debug().Str("key", key).Msg("loading-into-cache")
	obj, err := load(key)
	if err != nil {
		return nil, err
	}
	c.objects[key] = obj
	return obj, nil
}

// Load returns the object for key, calling load the first time. Failed
// loads are not remembered.
func Load(key string, load loadFunc) (any, error) {
	return GlobalObjectCache.get(key, load)
}

// Forget drops key, so the next Load builds it again.
func Forget(key string) {
	GlobalObjectCache.Lock()
	defer GlobalObjectCache.Unlock()
	delete(GlobalObjectCache.objects, key)
}
