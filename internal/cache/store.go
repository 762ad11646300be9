package cache

import (
	"context"
	"time"

	"lotomania/internal/lotto"
)

// DefaultLatestTTL is how long the latest result stays fresh.
const DefaultLatestTTL = time.Hour

// Store keeps fetched results across sessions. Per-contest entries never
// expire; the latest entry expires after its TTL. Read failures are misses.
type Store interface {
	Get(ctx context.Context, contest int) (lotto.Draw, bool)
	Put(ctx context.Context, d lotto.Draw) error
	Latest(ctx context.Context) (lotto.Draw, bool)
	PutLatest(ctx context.Context, d lotto.Draw) error
}
