package db

import (
	"fmt"
	"log"
	"sync"

	"github.com/dgraph-io/ristretto"

	"saku-server/src/models"
)

// Storing cache keys in a concurrent data structure to allow for clearing all
// caches of a certain type.
var (
	Cache         *ristretto.Cache
	GoalCacheKeys = struct {
		sync.RWMutex
		m map[int64]struct{}
	}{m: make(map[int64]struct{})}
)

func InitCache() {
	var err error
	Cache, err = ristretto.NewCache(&ristretto.Config{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		log.Fatalf("failed to initialize cache: %v", err)
	}
}

func goalCacheKey(goalID int64) string {
	return fmt.Sprintf("goal:%d", goalID)
}

// GoalProjectionCache is the ristretto-backed cache for goal derived fields.
// It satisfies the ledger's ProjectionCache interface.
type GoalProjectionCache struct{}

func (GoalProjectionCache) Get(goalID int64) (models.GoalDerived, bool) {
	value, ok := Cache.Get(goalCacheKey(goalID))
	if !ok {
		return models.GoalDerived{}, false
	}
	derived, ok := value.(models.GoalDerived)
	return derived, ok
}

func (GoalProjectionCache) Set(goalID int64, derived models.GoalDerived) {
	GoalCacheKeys.Lock()
	GoalCacheKeys.m[goalID] = struct{}{}
	GoalCacheKeys.Unlock()
	Cache.Set(goalCacheKey(goalID), derived, 1)
}

func (GoalProjectionCache) Invalidate(goalID int64) {
	GoalCacheKeys.Lock()
	delete(GoalCacheKeys.m, goalID)
	GoalCacheKeys.Unlock()
	Cache.Del(goalCacheKey(goalID))
}

func ClearAllGoalCaches() {
	GoalCacheKeys.Lock()
	for goalID := range GoalCacheKeys.m {
		Cache.Del(goalCacheKey(goalID))
	}
	GoalCacheKeys.m = make(map[int64]struct{})
	GoalCacheKeys.Unlock()
}
