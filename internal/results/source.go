package results

import (
	"context"
	"errors"

	"lotomania/internal/lotto"
)

var (
	// ErrNotFound means the contest has no published result yet.
	ErrNotFound = errors.New("result not found")
	// ErrNetwork covers transport failures and upstream 5xx responses.
	ErrNetwork = errors.New("result source unreachable")
	// ErrInvalidPayload means the upstream answered with something that is not a draw.
	ErrInvalidPayload = errors.New("invalid result payload")
)

// Source provides official draw results.
type Source interface {
	Latest(ctx context.Context) (lotto.Draw, error)
	ByContest(ctx context.Context, contest int) (lotto.Draw, error)
}
