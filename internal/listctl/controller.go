package listctl

import (
	"context"
	"strings"
	"sync"
	"time"

	"go-pos-client/internal/gateway"
	"go-pos-client/internal/models"
)

// DefaultDebounce is how long the controller waits after the last keystroke
// before firing a search request.
const DefaultDebounce = 400 * time.Millisecond

// Source is the pair of remote calls a controller drives: the plain listing
// and the term search. Both share pagination and sorting parameters.
type Source[T any] struct {
	List   func(ctx context.Context, q gateway.ListQuery) gateway.Page[T]
	Search func(ctx context.Context, term string, q gateway.ListQuery) gateway.Page[T]
}

// View is the controller state a page renders from.
type View[T any] struct {
	Rows       []T               `json:"rows"`
	Total      int               `json:"total"`
	Pagination models.Pagination `json:"pagination"`
	Busy       bool              `json:"busy"`
	Message    string            `json:"message,omitempty"`
	Term       string            `json:"term,omitempty"`
	Page       int               `json:"page"`
	PerPage    int               `json:"perPage"`
	SortBy     string            `json:"sortBy"`
	SortOrder  string            `json:"sortOrder"`
}

// Controller is the one list/search/paginate/sort state machine shared by
// every entity page. A generation counter guards against out-of-order
// responses: whatever arrives for a superseded generation is dropped, so a
// slow stale search can never overwrite a newer result set.
type Controller[T any] struct {
	source   Source[T]
	debounce time.Duration

	mu         sync.Mutex
	page       int
	perPage    int
	sortBy     string
	sortOrder  string
	term       string
	rows       []T
	total      int
	pagination models.Pagination
	message    string
	busy       bool
	gen        uint64
	timer      *time.Timer
}

func New[T any](source Source[T]) *Controller[T] {
	return &Controller[T]{
		source:    source,
		debounce:  DefaultDebounce,
		page:      1,
		perPage:   10,
		sortBy:    "id",
		sortOrder: "asc",
	}
}

// SetDebounce overrides the search debounce window (tests shrink it).
func (c *Controller[T]) SetDebounce(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debounce = d
}

func (c *Controller[T]) View() View[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller[T]) viewLocked() View[T] {
	rows := make([]T, len(c.rows))
	copy(rows, c.rows)
	return View[T]{
		Rows:       rows,
		Total:      c.total,
		Pagination: c.pagination,
		Busy:       c.busy,
		Message:    c.message,
		Term:       c.term,
		Page:       c.page,
		PerPage:    c.perPage,
		SortBy:     c.sortBy,
		SortOrder:  c.sortOrder,
	}
}

// Load fetches the current view: the listing endpoint when no term is set,
// the search endpoint otherwise. A failed fetch renders as zero rows with the
// failure message, never as a fault.
func (c *Controller[T]) Load(ctx context.Context) View[T] {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.busy = true
	term := c.term
	q := gateway.ListQuery{
		Page:      c.page,
		PerPage:   c.perPage,
		SortBy:    c.sortBy,
		SortOrder: c.sortOrder,
		Paginate:  true,
	}
	c.mu.Unlock()

	var page gateway.Page[T]
	if term == "" {
		page = c.source.List(ctx, q)
	} else {
		page = c.source.Search(ctx, term, q)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		// A newer request took over while this one was in flight.
		return c.viewLocked()
	}
	c.busy = false
	c.rows = page.Data
	c.total = page.Pagination.Total
	c.pagination = page.Pagination
	c.message = page.Message
	return c.viewLocked()
}

// SetPage jumps to a page and reloads.
func (c *Controller[T]) SetPage(ctx context.Context, page int) View[T] {
	c.mu.Lock()
	if page < 1 {
		page = 1
	}
	c.page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetPerPage changes the page size and reloads at the given page.
func (c *Controller[T]) SetPerPage(ctx context.Context, perPage, page int) View[T] {
	c.mu.Lock()
	if perPage > 0 {
		c.perPage = perPage
	}
	if page < 1 {
		page = 1
	}
	c.page = page
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetSort changes the sort column/direction and reloads.
func (c *Controller[T]) SetSort(ctx context.Context, sortBy, sortOrder string) View[T] {
	c.mu.Lock()
	if sortBy != "" {
		c.sortBy = sortBy
	}
	if sortOrder == "asc" || sortOrder == "desc" {
		c.sortOrder = sortOrder
	}
	c.mu.Unlock()
	return c.Load(ctx)
}

// SetTerm updates the search term. A non-empty term resets to page 1 and
// schedules a debounced search; typing again within the window replaces the
// pending one, so a burst of keystrokes issues a single request. Clearing the
// term cancels any pending search and reloads the unfiltered listing at once.
func (c *Controller[T]) SetTerm(ctx context.Context, term string) View[T] {
	term = strings.TrimSpace(term)

	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.term = term
	c.page = 1

	if term == "" {
		c.mu.Unlock()
		return c.Load(ctx)
	}

	c.timer = time.AfterFunc(c.debounce, func() {
		// The originating request is long gone by the time this fires.
		c.Load(context.Background())
	})
	view := c.viewLocked()
	c.mu.Unlock()
	return view
}

// Mutate runs a create/update/delete call and, when it succeeds, reloads the
// current view with the active term and pagination preserved. On failure the
// view is left exactly as it was.
func (c *Controller[T]) Mutate(ctx context.Context, op func(context.Context) gateway.Result) gateway.Result {
	res := op(ctx)
	if res.Success {
		c.Load(ctx)
	}
	return res
}
