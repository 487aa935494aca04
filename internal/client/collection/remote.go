package collection

import (
	"context"
	"net/url"
)

// Record is an entity keyed by a server-assigned id.
type Record interface {
	GetID() string
}

// Remote is the server side of a collection.
type Remote[T Record] interface {
	List(ctx context.Context, params url.Values) ([]T, error)
	Create(ctx context.Context, draft T) (T, error)
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// RemoteFuncs adapts plain functions to Remote. A nil function makes the
// corresponding operation fail with ErrUnsupported.
type RemoteFuncs[T Record] struct {
	ListFunc   func(ctx context.Context, params url.Values) ([]T, error)
	CreateFunc func(ctx context.Context, draft T) (T, error)
	UpdateFunc func(ctx context.Context, id string, rec T) (T, error)
	DeleteFunc func(ctx context.Context, id string) error
}

func (r RemoteFuncs[T]) List(ctx context.Context, params url.Values) ([]T, error) {
	if r.ListFunc == nil {
		return nil, ErrUnsupported
	}
	return r.ListFunc(ctx, params)
}

func (r RemoteFuncs[T]) Create(ctx context.Context, draft T) (T, error) {
	if r.CreateFunc == nil {
		var zero T
		return zero, ErrUnsupported
	}
	return r.CreateFunc(ctx, draft)
}

func (r RemoteFuncs[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	if r.UpdateFunc == nil {
		var zero T
		return zero, ErrUnsupported
	}
	return r.UpdateFunc(ctx, id, rec)
}

func (r RemoteFuncs[T]) Delete(ctx context.Context, id string) error {
	if r.DeleteFunc == nil {
		return ErrUnsupported
	}
	return r.DeleteFunc(ctx, id)
}

// Notifier shows a blocking message to the user.
type Notifier interface {
	Notify(ctx context.Context, msg string)
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type NotifierFunc func(ctx context.Context, msg string)

func (f NotifierFunc) Notify(ctx context.Context, msg string) { f(ctx, msg) }

type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }
