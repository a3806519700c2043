package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/hupe1980/concise"
	"github.com/hupe1980/concise/blobstore"
	"github.com/hupe1980/concise/internal/cache"
)

const (
	opUnion     = "union"
	opIntersect = "intersect"
)

// ErrInvalidName is returned for a set name that is empty or not a clean
// relative path.
var ErrInvalidName = errors.New("catalog: invalid set name")

// CacheStats describes the decoded set cache.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
	Bytes   int64
}

// Catalog stores named sets of encoding E in a blob store.
// It is safe for concurrent use.
type Catalog[E concise.Encoding] struct {
	store   blobstore.BlobStore
	prefix  string
	cache   *cache.LRU[string, *concise.Set[E]]
	group   singleflight.Group
	logger  *Logger
	metrics MetricsCollector
	workers int
}

// New creates a catalog backed by store.
func New[E concise.Encoding](store blobstore.BlobStore, opts ...Option) *Catalog[E] {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Catalog[E]{
		store:  store,
		prefix: o.prefix,
		cache: cache.NewLRU[string](o.cacheBytes, func(s *concise.Set[E]) int64 {
			return int64(s.SizeInBytes())
		}),
		logger:  o.logger,
		metrics: o.metricsCollector,
		workers: o.concurrency,
	}
}

func (c *Catalog[E]) key(name string) string {
	return c.prefix + name
}

// checkName rejects names that could resolve outside the catalog prefix.
func checkName(name string) error {
	if name == "" || strings.ContainsRune(name, '\\') {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	for _, elem := range strings.Split(name, "/") {
		switch elem {
		case "", ".", "..":
			return fmt.Errorf("%w: %q", ErrInvalidName, name)
		}
	}
	return nil
}

// CacheStats returns a snapshot of the decoded set cache.
func (c *Catalog[E]) CacheStats() CacheStats {
	hits, misses := c.cache.Stats()
	return CacheStats{
		Hits:    hits,
		Misses:  misses,
		Entries: c.cache.Len(),
		Bytes:   c.cache.Size(),
	}
}

// Put persists s under name, replacing any previous set.
// The catalog keeps its own copy; s may be modified afterwards.
func (c *Catalog[E]) Put(ctx context.Context, name string, s *concise.Set[E]) (err error) {
	start := time.Now()
	bytes := 0
	defer func() {
		c.metrics.RecordPut(bytes, time.Since(start), err)
		c.logger.WithName(name).LogPut(ctx, bytes, err)
	}()

	if err := checkName(name); err != nil {
		return err
	}

	data, err := s.MarshalBinary()
	if err != nil {
		return fmt.Errorf("encode %q: %w", name, err)
	}
	if err := c.store.Put(ctx, c.key(name), data); err != nil {
		return fmt.Errorf("put %q: %w", name, err)
	}
	bytes = len(data)

	c.group.Forget(name)
	c.cache.Set(name, s.Clone())
	return nil
}

// Get returns a copy of the set stored under name. A missing set yields an
// error matching blobstore.ErrNotFound, a corrupt blob one matching
// concise.ErrMalformed.
func (c *Catalog[E]) Get(ctx context.Context, name string) (*concise.Set[E], error) {
	start := time.Now()
	s, hit, err := c.load(ctx, name)
	c.metrics.RecordGet(time.Since(start), hit, err)
	c.logger.WithName(name).LogGet(ctx, hit, err)
	if err != nil {
		return nil, err
	}
	return s.Clone(), nil
}

// Contains reports whether v is a member of the set stored under name.
func (c *Catalog[E]) Contains(ctx context.Context, name string, v uint32) (bool, error) {
	s, _, err := c.load(ctx, name)
	if err != nil {
		return false, err
	}
	return s.Contains(v), nil
}

// load returns the shared decoded set. Callers must not modify it.
func (c *Catalog[E]) load(ctx context.Context, name string) (*concise.Set[E], bool, error) {
	if err := checkName(name); err != nil {
		return nil, false, err
	}
	if s, ok := c.cache.Get(name); ok {
		return s, true, nil
	}

	v, err, _ := c.group.Do(name, func() (any, error) {
		data, err := c.store.Get(ctx, c.key(name))
		if err != nil {
			return nil, fmt.Errorf("get %q: %w", name, err)
		}
		s := concise.New[E]()
		if err := s.UnmarshalBinary(data); err != nil {
			return nil, fmt.Errorf("decode %q: %w", name, err)
		}
		c.cache.Set(name, s)
		return s, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*concise.Set[E]), false, nil
}

// Delete removes the set stored under name. Deleting a missing set is not an error.
func (c *Catalog[E]) Delete(ctx context.Context, name string) (err error) {
	start := time.Now()
	defer func() {
		c.metrics.RecordDelete(time.Since(start), err)
		c.logger.WithName(name).LogDelete(ctx, err)
	}()

	if err := checkName(name); err != nil {
		return err
	}

	c.cache.Remove(name)
	c.group.Forget(name)
	if err := c.store.Delete(ctx, c.key(name)); err != nil {
		return fmt.Errorf("delete %q: %w", name, err)
	}
	return nil
}

// List returns the sorted names of all stored sets.
func (c *Catalog[E]) List(ctx context.Context) ([]string, error) {
	keys, err := c.store.List(ctx, c.prefix)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, strings.TrimPrefix(k, c.prefix))
	}
	slices.Sort(names)
	return names, nil
}

// Union returns the union of the named sets.
func (c *Catalog[E]) Union(ctx context.Context, names ...string) (res *concise.Set[E], err error) {
	start := time.Now()
	defer func() {
		c.finishCombine(ctx, opUnion, len(names), start, res, err)
	}()

	sets, err := c.loadAll(ctx, names)
	if err != nil {
		return nil, err
	}
	return concise.FastUnion(sets...), nil
}

// Intersect returns the intersection of the named sets. It starts from the
// smallest set and stops once the running result is empty.
func (c *Catalog[E]) Intersect(ctx context.Context, names ...string) (res *concise.Set[E], err error) {
	start := time.Now()
	defer func() {
		c.finishCombine(ctx, opIntersect, len(names), start, res, err)
	}()

	sets, err := c.loadAll(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(sets) == 0 {
		return concise.New[E](), nil
	}

	slices.SortFunc(sets, func(a, b *concise.Set[E]) int {
		return a.SizeInBytes() - b.SizeInBytes()
	})

	res = sets[0].Clone()
	for _, s := range sets[1:] {
		if res.IsEmpty() {
			break
		}
		res = res.And(s)
	}
	return res, nil
}

func (c *Catalog[E]) finishCombine(ctx context.Context, op string, inputs int, start time.Time, res *concise.Set[E], err error) {
	size := 0
	if res != nil {
		size = res.Size()
	}
	c.metrics.RecordCombine(op, inputs, time.Since(start), err)
	c.logger.WithInputs(inputs).LogCombine(ctx, op, size, err)
}

// loadAll loads the named sets concurrently, failing on the first error.
func (c *Catalog[E]) loadAll(ctx context.Context, names []string) ([]*concise.Set[E], error) {
	sets := make([]*concise.Set[E], len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, name := range names {
		g.Go(func() error {
			s, _, err := c.load(gctx, name)
			if err != nil {
				return err
			}
			sets[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sets, nil
}
