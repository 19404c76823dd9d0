package console

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/blendsoftware/posadmin/sdk"
)

// requestTimeout bounds every command issued by the console. There is no
// retry policy: a failed request surfaces once and requires a
// user-initiated retry.
const requestTimeout = 30 * time.Second

// FetchFunc loads one page of a resource collection.
type FetchFunc[T any] func(ctx context.Context, q sdk.ListQuery) (sdk.Page[T], error)

// FetchResultMsg carries the outcome of a Refresh command back into the
// event loop. Token identifies which Refresh issued the request.
type FetchResultMsg[T any] struct {
	Token uint64
	Page  sdk.Page[T]
	Err   error
}

// MutationDoneMsg carries the outcome of a create/update/delete/toggle
// command. Resource and Op route the message to the right surface.
type MutationDoneMsg struct {
	Resource string
	Op       string
	Err      error
}

// Collection owns the current page of one resource collection along with
// its pagination and search parameters, loading flag, and error surface.
// It is the single owner of this state: nothing outside mutates it except
// through the operations below, and every mutation of the remote store is
// followed by a full refresh, so Items is always a read-only projection
// of the backend.
type Collection[T any] struct {
	fetch  FetchFunc[T]
	logger *zap.Logger

	// Items is the last successfully fetched page, kept visible across
	// failed refreshes (stale-but-visible beats a blank screen).
	Items []T

	// Page is 1-based and clamped to [1, max(TotalPages, 1)].
	Page          int
	Size          int
	TotalElements int
	TotalPages    int

	Search  string
	Loading bool

	// Err is the inline error surface for list failures.
	Err string

	// lastToken is the monotonically increasing request token. Only the
	// response matching the latest issued token is applied; responses
	// arriving out of order are discarded, never the in-flight requests
	// themselves.
	lastToken uint64
}

// NewCollection creates a collection controller starting at page 1.
func NewCollection[T any](fetch FetchFunc[T], pageSize int, logger *zap.Logger) *Collection[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collection[T]{
		fetch:  fetch,
		logger: logger,
		Page:   1,
		Size:   pageSize,
	}
}

// Refresh issues a fetch for the current pagination and search state.
// Safe to call repeatedly; each call supersedes the previous one.
func (c *Collection[T]) Refresh() tea.Cmd {
	c.Loading = true
	c.lastToken++

	token := c.lastToken
	fetch := c.fetch
	q := sdk.ListQuery{Page: c.Page, Size: c.Size, Search: c.Search}

	c.logger.Debug("refresh issued",
		zap.Uint64("token", token),
		zap.Int("page", q.Page),
		zap.String("search", q.Search))

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		page, err := fetch(ctx, q)
		return FetchResultMsg[T]{Token: token, Page: page, Err: err}
	}
}

// Apply folds a fetch result into the collection. Stale responses (token
// older than the latest issued request) are discarded so rapid refreshes
// can never regress the view to older data. On failure the previous
// items stay untouched and only the error surface changes.
func (c *Collection[T]) Apply(msg FetchResultMsg[T]) {
	if msg.Token != c.lastToken {
		c.logger.Debug("stale response discarded",
			zap.Uint64("token", msg.Token),
			zap.Uint64("latest", c.lastToken))
		return
	}

	c.Loading = false

	if msg.Err != nil {
		c.Err = msg.Err.Error()
		c.logger.Warn("refresh failed", zap.Error(msg.Err))
		return
	}

	c.Err = ""
	c.Items = msg.Page.Items
	c.Page = msg.Page.Page
	c.TotalElements = msg.Page.TotalElements
	c.TotalPages = msg.Page.TotalPages

	if c.Page < 1 {
		c.Page = 1
	}
	if c.TotalPages > 0 && c.Page > c.TotalPages {
		c.Page = c.TotalPages
	}

	c.logger.Debug("refresh applied",
		zap.Int("items", len(c.Items)),
		zap.Int("page", c.Page),
		zap.Int("total_pages", c.TotalPages))
}

// maxPage returns the clamp upper bound, at least 1 even when the total
// is unknown or zero.
func (c *Collection[T]) maxPage() int {
	if c.TotalPages < 1 {
		return 1
	}
	return c.TotalPages
}

// ChangePage moves to page n and refreshes. Requests outside
// [1, maxPage] are rejected as a no-op.
func (c *Collection[T]) ChangePage(n int) tea.Cmd {
	if n < 1 || n > c.maxPage() || n == c.Page {
		return nil
	}
	c.Page = n
	return c.Refresh()
}

// NextPage advances one page if possible.
func (c *Collection[T]) NextPage() tea.Cmd {
	return c.ChangePage(c.Page + 1)
}

// PrevPage goes back one page if possible.
func (c *Collection[T]) PrevPage() tea.Cmd {
	return c.ChangePage(c.Page - 1)
}

// ChangeSearch replaces the search term, resets to page 1, and refreshes.
func (c *Collection[T]) ChangeSearch(term string) tea.Cmd {
	c.Search = term
	c.Page = 1
	return c.Refresh()
}

// Mutate wraps a mutation call as a command. The resulting
// MutationDoneMsg is routed by the root model: success closes the form
// and refreshes, failure surfaces at the call site without discarding
// draft state.
func Mutate(resource, op string, fn func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		return MutationDoneMsg{Resource: resource, Op: op, Err: fn(ctx)}
	}
}
