package metrics

import (
	"context"
	"errors"
	"time"

	"stackmap/internal/repository"
)

// InstrumentedStore decorates a repository.Store with operation metrics
type InstrumentedStore struct {
	inner     repository.Store
	backend   string
	collector *Collector
}

// InstrumentStore wraps store so every call is counted under backend
func InstrumentStore(store repository.Store, backend string, c *Collector) *InstrumentedStore {
	return &InstrumentedStore{
		inner:     store,
		backend:   backend,
		collector: c,
	}
}

// Get counts a miss as a successful operation
func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.inner.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		s.observe("get", nil, start)
		return value, err
	}
	s.observe("get", err, start)
	return value, err
}

func (s *InstrumentedStore) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Put(ctx, key, value)
	s.observe("put", err, start)
	return err
}

func (s *InstrumentedStore) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.observe("delete", err, start)
	return err
}

func (s *InstrumentedStore) Close() error {
	return s.inner.Close()
}

func (s *InstrumentedStore) observe(op string, err error, start time.Time) {
	s.collector.StoreOperations.WithLabelValues(s.backend, op, result(err)).Inc()
	s.collector.StoreDuration.WithLabelValues(s.backend, op).Observe(time.Since(start).Seconds())
}
