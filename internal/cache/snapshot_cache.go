package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/fortuna/services/shotclock-analytics/pkg/models"
)

// SnapshotTTL bounds how long a memoized snapshot is served before the next
// load goes back to the source
const SnapshotTTL = 12 * time.Hour

// SnapshotCache memoizes complete dataset snapshots in Redis. It is a
// session-scoped convenience, not persistence: every operation degrades to
// a miss on failure and the service works with Redis absent
type SnapshotCache struct {
	client *redis.Client
}

// NewSnapshotCache creates a Redis-backed snapshot cache
func NewSnapshotCache(client *redis.Client) *SnapshotCache {
	return &SnapshotCache{
		client: client,
	}
}

func snapshotKey(dataset models.DatasetKind, season string) string {
	return fmt.Sprintf("shotclock:snapshot:%s:%s", dataset, season)
}

// Write stores a snapshot under its dataset/season key with a bounded TTL
func (c *SnapshotCache) Write(ctx context.Context, snap *models.Snapshot) error {
	key := snapshotKey(snap.Dataset, snap.Season)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}

	return c.client.Set(ctx, key, data, SnapshotTTL).Err()
}

// Read retrieves a memoized snapshot; a missing key is (nil, nil)
func (c *SnapshotCache) Read(ctx context.Context, dataset models.DatasetKind, season string) (*models.Snapshot, error) {
	key := snapshotKey(dataset, season)

	data, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}

	return &snap, nil
}

// Invalidate drops the memoized snapshot so the next load hits the source
func (c *SnapshotCache) Invalidate(ctx context.Context, dataset models.DatasetKind, season string) error {
	return c.client.Del(ctx, snapshotKey(dataset, season)).Err()
}
