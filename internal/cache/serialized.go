package cache

import (
	"context"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"lotomania/internal/lotto"
)

const latestKey = "latest"

type readResult struct {
	draw lotto.Draw
	ok   bool
}

// Serialized makes a Store safe for concurrent use: writes to the same key
// run one at a time and concurrent reads of a key share one backend call.
type Serialized struct {
	next  Store
	reads singleflight.Group

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewSerialized(next Store) *Serialized {
	return &Serialized{next: next, locks: make(map[string]*sync.Mutex)}
}

func (s *Serialized) lock(key string) func() {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *Serialized) read(key string, fn func() (lotto.Draw, bool)) (lotto.Draw, bool) {
	v, _, _ := s.reads.Do(key, func() (any, error) {
		d, ok := fn()
		return readResult{draw: d, ok: ok}, nil
	})
	r := v.(readResult)
	return r.draw, r.ok
}

func (s *Serialized) Get(ctx context.Context, contest int) (lotto.Draw, bool) {
	return s.read(strconv.Itoa(contest), func() (lotto.Draw, bool) {
		return s.next.Get(ctx, contest)
	})
}

func (s *Serialized) Put(ctx context.Context, d lotto.Draw) error {
	defer s.lock(strconv.Itoa(d.Contest))()
	return s.next.Put(ctx, d)
}

func (s *Serialized) Latest(ctx context.Context) (lotto.Draw, bool) {
	return s.read(latestKey, func() (lotto.Draw, bool) {
		return s.next.Latest(ctx)
	})
}

func (s *Serialized) PutLatest(ctx context.Context, d lotto.Draw) error {
	defer s.lock(latestKey)()
	return s.next.PutLatest(ctx, d)
}
