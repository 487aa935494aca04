package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kambaz/internal/client/client"
	"github.com/dmitrijs2005/kambaz/internal/client/collection"
	"github.com/dmitrijs2005/kambaz/internal/client/models"
	"github.com/dmitrijs2005/kambaz/internal/client/session"
	"github.com/dmitrijs2005/kambaz/internal/logging"
)

// Screen is a mounted view.
type Screen interface {
	Name() string
	Load(ctx context.Context) error
	Close()
}

// Env is what the application hands to every screen.
type Env struct {
	Session   *session.Session
	Logger    logging.Logger
	Notifier  collection.Notifier
	Confirmer collection.Confirmer
}

func (e Env) logger() logging.Logger {
	if e.Logger == nil {
		return logging.NewNop()
	}
	return e.Logger
}

func (e Env) collectionOptions() []collection.Option {
	return []collection.Option{
		collection.WithLogger(e.logger()),
		collection.WithNotifier(e.Notifier),
		collection.WithConfirmer(e.Confirmer),
		collection.WithDescribe(client.Describe),
	}
}

// notify reports a failed call that does not go through a collection.
func (e Env) notify(ctx context.Context, err error) {
	if e.Notifier == nil || err == nil || errors.Is(err, collection.ErrCancelled) {
		return
	}
	e.Notifier.Notify(ctx, client.Describe(err))
}

// require checks the session before a guarded action. A rejected draft is
// reported the same way as a rejected request.
func (e Env) require(roles ...models.Role) (models.User, error) {
	if e.Session == nil {
		return models.User{}, session.ErrNotSignedIn
	}
	return e.Session.Require(roles...)
}

var manageRoles = []models.Role{models.RoleFaculty, models.RoleAdmin}

func validate(draft any) error {
	if err := models.Validate(draft); err != nil {
		return fmt.Errorf("%w: %w", client.ErrValidation, err)
	}
	return nil
}
