package listview

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Phase is the load state of a controller.
type Phase string

const (
	PhaseLoading Phase = "loading"
	PhaseReady   Phase = "ready"
	PhaseError   Phase = "error"
)

// Loader fetches the full collection behind a list view.
type Loader[T any] interface {
	LoadAll(ctx context.Context) ([]T, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc[T any] func(ctx context.Context) ([]T, error)

// LoadAll implements Loader.
func (f LoaderFunc[T]) LoadAll(ctx context.Context) ([]T, error) { return f(ctx) }

// StatusUpdater changes the status of one record in the data source.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, id, status string) error
}

// State is the serializable view state: everything needed to rebuild the
// visible page from a collection snapshot.
type State struct {
	Criteria Criteria `json:"criteria"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
	Order    Order    `json:"order,omitempty"`
}

// PageMeta describes the visible page for a pager.
type PageMeta struct {
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
	PageSize    int   `json:"page_size"`
	TotalItems  int   `json:"total_items"`
	Pages       []int `json:"pages"`
	HasPrevious bool  `json:"has_previous"`
	HasNext     bool  `json:"has_next"`
}

// Option configures a Controller.
type Option func(*settings)

type settings struct {
	pageSize   int
	windowSize int
	order      Order
	now        func() time.Time
	logger     zerolog.Logger
	updater    StatusUpdater
}

// WithPageSize sets the number of records per page.
func WithPageSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// WithWindowSize sets the number of page buttons in the page-number window.
func WithWindowSize(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.windowSize = n
		}
	}
}

// WithOrder sets the initial date ordering.
func WithOrder(o Order) Option {
	return func(s *settings) { s.order = o }
}

// WithClock replaces time.Now, used to resolve date-range shortcuts.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLogger attaches a logger for load and mutation events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithStatusUpdater enables UpdateStatus.
func WithStatusUpdater(u StatusUpdater) Option {
	return func(s *settings) { s.updater = u }
}

// Controller holds one list view session: the collection snapshot, the view
// state and the computed page. The snapshot is only ever replaced wholesale.
type Controller[T any] struct {
	loader Loader[T]
	fields Fields[T]
	cfg    settings

	mu      sync.Mutex
	token   uint64
	phase   Phase
	err     error
	fetched bool
	source  []T // as returned by the loader
	all     []T // source in state.Order
	state   State
	matched int
	visible Page[T]
}

// NewController builds a controller in the ready phase with an empty
// collection and default state.
func NewController[T any](loader Loader[T], fields Fields[T], opts ...Option) *Controller[T] {
	cfg := settings{
		pageSize:   10,
		windowSize: DefaultWindowSize,
		now:        time.Now,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller[T]{
		loader: loader,
		fields: fields,
		cfg:    cfg,
		phase:  PhaseReady,
		state:  State{Page: 1, PageSize: cfg.pageSize, Order: cfg.order},
	}
	c.recompute()
	return c
}

// Load fetches the full collection and recomputes the page. A completion
// that arrives after a newer Load started is discarded with ErrStaleLoad.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.token++
	token := c.token
	c.phase = PhaseLoading
	c.err = nil
	c.mu.Unlock()

	c.cfg.logger.Debug().Uint64("token", token).Msg("loading collection")
	items, err := c.loader.LoadAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		c.cfg.logger.Debug().
			Uint64("token", token).
			Uint64("current", c.token).
			Msg("discarding stale load")
		return ErrStaleLoad
	}

	if err != nil {
		c.phase = PhaseError
		c.err = &LoadError{Err: err}
		c.fetched = true
		c.source, c.all = nil, nil
		c.recompute()
		c.cfg.logger.Warn().Err(err).Uint64("token", token).Msg("collection load failed")
		return c.err
	}

	c.fetched = true
	c.source = items
	c.all = Sort(items, c.fields, c.state.Order)
	c.phase = PhaseReady
	c.recompute()
	c.cfg.logger.Debug().
		Uint64("token", token).
		Int("count", len(c.all)).
		Int("matched", c.matched).
		Msg("collection loaded")
	return nil
}

// SetFilter replaces the criteria and returns to the first page.
func (c *Controller[T]) SetFilter(criteria Criteria) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Criteria = criteria
	c.state.Page = 1
	c.recompute()
}

// SetOrder re-sorts the snapshot.
func (c *Controller[T]) SetOrder(o Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Order = o
	c.all = Sort(c.source, c.fields, o)
	c.recompute()
}

// SetPage moves to page n. It is a no-op, returning false, when n is outside
// [1, totalPages].
func (c *Controller[T]) SetPage(n int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPage(n)
}

// NextPage advances one page if there is one.
func (c *Controller[T]) NextPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPage(c.state.Page + 1)
}

// PreviousPage goes back one page if there is one.
func (c *Controller[T]) PreviousPage() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setPage(c.state.Page - 1)
}

func (c *Controller[T]) setPage(n int) bool {
	if n < 1 || n > c.visible.TotalPages {
		return false
	}
	c.state.Page = n
	c.recompute()
	return true
}

// Restore applies a decoded view state. Unlike SetPage, an out-of-range page
// is clamped rather than ignored, so a stale link still lands on a page.
// Before the first Load the page is kept as given and clamped once the
// collection arrives.
func (c *Controller[T]) Restore(s State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s.PageSize <= 0 {
		s.PageSize = c.cfg.pageSize
	}
	if s.Order != c.state.Order {
		c.all = Sort(c.source, c.fields, s.Order)
	}
	c.state = s
	c.recompute()
}

// UpdateStatus changes one record's status through the configured
// StatusUpdater, then reloads the whole collection.
func (c *Controller[T]) UpdateStatus(ctx context.Context, id, status string) error {
	if c.cfg.updater == nil {
		return ErrNoUpdater
	}
	return c.Mutate(ctx, "update status", id, func(ctx context.Context) error {
		return c.cfg.updater.UpdateStatus(ctx, id, status)
	})
}

// Mutate runs a mutating action. On failure nothing changes and a
// *MutationError is returned; on success the collection is reloaded.
func (c *Controller[T]) Mutate(ctx context.Context, op, id string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		c.cfg.logger.Warn().Err(err).Str("op", op).Str("id", id).Msg("mutation failed")
		return &MutationError{Op: op, ID: id, Err: err}
	}
	return c.Load(ctx)
}

// VisibleItems returns the records of the current page.
func (c *Controller[T]) VisibleItems() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.visible.Items))
	copy(out, c.visible.Items)
	return out
}

// PageMetadata describes the current page.
func (c *Controller[T]) PageMetadata() PageMeta {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.visible.TotalPages
	cur := c.visible.Current
	return PageMeta{
		CurrentPage: cur,
		TotalPages:  total,
		PageSize:    c.state.PageSize,
		TotalItems:  c.matched,
		Pages:       PageWindow(cur, total, c.cfg.windowSize),
		HasPrevious: cur > 1,
		HasNext:     cur < total,
	}
}

// State returns a copy of the current view state.
func (c *Controller[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Phase returns the load phase.
func (c *Controller[T]) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Err returns the last load failure, if the controller is in the error
// phase.
func (c *Controller[T]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}

// Len returns the size of the loaded collection before filtering.
func (c *Controller[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.all)
}

// recompute runs filter then paginate over the sorted snapshot. Callers hold
// c.mu.
func (c *Controller[T]) recompute() {
	matched := Filter(c.all, c.state.Criteria, c.fields, c.cfg.now())
	c.matched = len(matched)
	c.visible = Paginate(matched, c.state.PageSize, c.state.Page)
	if c.fetched {
		c.state.Page = c.visible.Current
	}
}
