package collection

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"github.com/dmitrijs2005/kambaz/internal/logging"
)

// Option configures a Collection.
type Option func(*config)

type config struct {
	logger    logging.Logger
	notifier  Notifier
	confirmer Confirmer
	describe  func(error) string
}

func WithLogger(l logging.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithNotifier sets where mutation failures and stale updates are reported.
func WithNotifier(n Notifier) Option {
	return func(c *config) { c.notifier = n }
}

// WithConfirmer sets the confirmation step required by Delete. Without one,
// every Delete is cancelled.
func WithConfirmer(cf Confirmer) Option {
	return func(c *config) { c.confirmer = cf }
}

// WithDescribe sets how errors are turned into notification text.
func WithDescribe(fn func(error) string) Option {
	return func(c *config) { c.describe = fn }
}

// Collection is the cached copy of one remote list. It is safe for
// concurrent use; the lock is not held while a request is in flight.
type Collection[T Record] struct {
	name   string
	remote Remote[T]
	cfg    config

	mu         sync.Mutex
	items      []T
	selection  string
	selected   T
	version    uint64
	state      State
	lastParams url.Values
	closed     bool
}

// New returns an empty, idle collection. name is used in logs and prompts.
func New[T Record](name string, remote Remote[T], opts ...Option) *Collection[T] {
	cfg := config{
		logger:   logging.NewNop(),
		describe: func(err error) string { return err.Error() },
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.logger = cfg.logger.With("collection", name)

	return &Collection[T]{
		name:   name,
		remote: remote,
		cfg:    cfg,
		items:  []T{},
	}
}

func (c *Collection[T]) Name() string { return c.name }

// begin records the start of an action and returns the version it must see
// again to apply its result.
func (c *Collection[T]) begin(s State) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return 0, ErrClosed
	}
	c.state = s
	return c.version, nil
}

// commit applies fn if nothing changed since begin. The caller must not hold
// the lock.
func (c *Collection[T]) commit(ctx context.Context, op string, token uint64, failed State, fn func()) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		c.cfg.logger.Debug(ctx, "response after close dropped", "op", op)
		return ErrClosed
	}
	if c.version != token {
		current := c.version
		// A load overtaken by a newer result is superseded, not a failure.
		superseded := op == "load"
		if !superseded {
			c.state = failed
		}
		c.mu.Unlock()

		c.cfg.logger.Warn(ctx, "stale response discarded", "op", op, "version", token, "current", current)
		if !superseded {
			c.notify(ctx, fmt.Sprintf("The %s list changed while the request was in flight; reload to see the latest data.", c.name))
		}
		return ErrStaleUpdate
	}
	fn()
	c.version++
	c.mu.Unlock()
	return nil
}

func (c *Collection[T]) fail(ctx context.Context, op string, s State, err error, notify bool) {
	c.mu.Lock()
	if !c.closed {
		c.state = s
	}
	c.mu.Unlock()

	c.cfg.logger.Error(ctx, op+" failed", "error", err)
	if notify {
		c.notify(ctx, c.cfg.describe(err))
	}
}

func (c *Collection[T]) notify(ctx context.Context, msg string) {
	if c.cfg.notifier != nil {
		c.cfg.notifier.Notify(ctx, msg)
	}
}

// Load fetches the list with params forwarded as query parameters and
// replaces the cached items with the response. A nil response becomes an
// empty list. On failure the items are left as they were. The params are
// remembered for the reload that follows Create.
func (c *Collection[T]) Load(ctx context.Context, params url.Values) ([]T, error) {
	token, err := c.begin(Loading)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastParams = cloneValues(params)
	c.mu.Unlock()

	list, err := c.remote.List(ctx, params)
	if err != nil {
		c.fail(ctx, "load", LoadFailed, err, false)
		return c.Items(), err
	}
	if list == nil {
		list = []T{}
	}

	err = c.commit(ctx, "load", token, LoadFailed, func() {
		c.items = append([]T(nil), list...)
		c.state = Loaded
		if c.selection == "" {
			return
		}
		if rec, ok := c.find(c.selection); ok {
			c.selected = rec
		} else {
			c.clearSelectionLocked()
		}
	})
	return c.Items(), err
}

// Reload repeats Load with the last params.
func (c *Collection[T]) Reload(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	params := cloneValues(c.lastParams)
	c.mu.Unlock()
	return c.Load(ctx, params)
}

// Create sends draft to the server, appends the returned record and then
// reloads with the last params. The reload is authoritative; its failure is
// logged and does not fail Create.
func (c *Collection[T]) Create(ctx context.Context, draft T) (T, error) {
	var zero T

	token, err := c.begin(Mutating)
	if err != nil {
		return zero, err
	}

	created, err := c.remote.Create(ctx, draft)
	if err != nil {
		c.fail(ctx, "create", MutationFailed, err, true)
		return zero, err
	}

	err = c.commit(ctx, "create", token, MutationFailed, func() {
		c.items = append(c.items, created)
		c.state = Loaded
	})
	if err != nil {
		return created, err
	}

	if _, rerr := c.Reload(ctx); rerr != nil {
		c.cfg.logger.Warn(ctx, "reload after create failed", "id", created.GetID(), "error", rerr)
	}
	return created, nil
}

// Update sends rec for id and replaces the cached element with the same id by
// the server's copy. A selected snapshot with that id is refreshed too.
func (c *Collection[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T

	token, err := c.begin(Mutating)
	if err != nil {
		return zero, err
	}

	updated, err := c.remote.Update(ctx, id, rec)
	if err != nil {
		c.fail(ctx, "update", MutationFailed, err, true)
		return zero, err
	}

	err = c.commit(ctx, "update", token, MutationFailed, func() {
		for i := range c.items {
			if c.items[i].GetID() == id {
				c.items[i] = updated
			}
		}
		if c.selection == id {
			c.selected = updated
		}
		c.state = Loaded
	})
	if err != nil {
		return updated, err
	}
	return updated, nil
}

// Edit applies fn to a copy of the cached record with id and sends the result
// through Update.
func (c *Collection[T]) Edit(ctx context.Context, id string, fn func(*T)) (T, error) {
	rec, ok := c.Get(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s %s: %w", c.name, id, ErrNotFoundLocally)
	}
	fn(&rec)
	return c.Update(ctx, id, rec)
}

// Delete asks for confirmation and then deletes id on the server and from the
// cached items. A selected item with that id is deselected.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	return c.DeleteWithPrompt(ctx, id, fmt.Sprintf("Are you sure you want to delete %s %s?", c.name, id))
}

// DeleteWithPrompt is Delete with a caller-supplied confirmation question.
func (c *Collection[T]) DeleteWithPrompt(ctx context.Context, id, prompt string) error {
	if c.cfg.confirmer == nil || !c.cfg.confirmer.Confirm(ctx, prompt) {
		c.cfg.logger.Debug(ctx, "delete cancelled", "id", id)
		return ErrCancelled
	}

	token, err := c.begin(Mutating)
	if err != nil {
		return err
	}

	if err := c.remote.Delete(ctx, id); err != nil {
		c.fail(ctx, "delete", MutationFailed, err, true)
		return err
	}

	return c.commit(ctx, "delete", token, MutationFailed, func() {
		kept := c.items[:0:0]
		for _, it := range c.items {
			if it.GetID() != id {
				kept = append(kept, it)
			}
		}
		c.items = kept
		if c.selection == id {
			c.clearSelectionLocked()
		}
		c.state = Loaded
	})
}

// Select marks id as the selected item.
func (c *Collection[T]) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.find(id)
	if !ok {
		return fmt.Errorf("%s %s: %w", c.name, id, ErrNotFoundLocally)
	}
	c.selection = id
	c.selected = rec
	return nil
}

// Selection returns the selected id, or "" when nothing is selected.
func (c *Collection[T]) Selection() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selection
}

// Selected returns the selected snapshot.
func (c *Collection[T]) Selected() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selected, c.selection != ""
}

func (c *Collection[T]) ClearSelection() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearSelectionLocked()
}

func (c *Collection[T]) clearSelectionLocked() {
	var zero T
	c.selection = ""
	c.selected = zero
}

// Items returns a copy of the cached items in server order.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]T{}, c.items...)
}

// Visible returns the cached items that pass every filter.
func (c *Collection[T]) Visible(filters ...Filter[T]) []T {
	return Apply(c.Items(), filters...)
}

// Get returns the cached record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.find(id)
}

func (c *Collection[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T]) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Version is the number of changes applied so far.
func (c *Collection[T]) Version() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.version
}

// Close marks the owning screen as gone. Responses that arrive afterwards are
// dropped.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Collection[T]) find(id string) (T, bool) {
	for _, it := range c.items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}
