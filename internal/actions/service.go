package actions

import (
	"context"
	"log/slog"

	"recipectl/internal/api"
	"recipectl/internal/dispatch"
	"recipectl/internal/events"
	"recipectl/internal/logging"
	"recipectl/internal/session"
)

// Service binds the dispatcher, event bus, and session state into the
// operation surface the CLI consumes.
type Service struct {
	dispatcher *dispatch.Dispatcher
	bus        *events.Bus
	session    *session.Store
	logger     *slog.Logger
}

// New constructs the action service. A nil session disables selected-recipe
// tracking.
func New(dispatcher *dispatch.Dispatcher, bus *events.Bus, store *session.Store, logger *slog.Logger) *Service {
	if store == nil {
		store = &session.Store{}
	}
	return &Service{
		dispatcher: dispatcher,
		bus:        bus,
		session:    store,
		logger:     logging.NewComponentLogger(logger, "actions"),
	}
}

// Session exposes the selected-recipe store.
func (s *Service) Session() *session.Store {
	return s.session
}

// GetCurrentUser fetches the authenticated user.
func (s *Service) GetCurrentUser(ctx context.Context) (api.User, error) {
	var user api.User
	body, err := s.dispatcher.Execute(ctx, dispatch.OpGetCurrentUser, dispatch.Params{})
	if err != nil {
		return user, err
	}
	if err := dispatch.DecodeJSON(body, &user); err != nil {
		return user, err
	}
	s.bus.Publish(events.UserReceived{User: user})
	return user, nil
}
