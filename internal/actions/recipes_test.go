package actions_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"recipectl/internal/actions"
	"recipectl/internal/dispatch"
	"recipectl/internal/events"
	"recipectl/internal/logging"
	"recipectl/internal/notifications"
	"recipectl/internal/session"
	"recipectl/internal/testsupport"
)

type fixture struct {
	server  *testsupport.RecipeServer
	service *actions.Service
	manager *notifications.Manager
	events  <-chan events.Event
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	server := testsupport.NewRecipeServer(t)
	bus := events.NewBus()
	t.Cleanup(bus.Close)
	ch, cancel := bus.Subscribe()
	t.Cleanup(cancel)

	manager := notifications.NewManager(bus, logging.NewNop(),
		notifications.WithDismissAfter(time.Hour))
	t.Cleanup(manager.Close)

	dispatcher := dispatch.New(server.URL(), "csrf-abc", server.Client(), bus, manager, logging.NewNop())
	service := actions.New(dispatcher, bus, &session.Store{}, logging.NewNop())

	return &fixture{server: server, service: service, manager: manager, events: ch}
}

func (f *fixture) waitFor(t *testing.T, match func(events.Event) bool) events.Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-f.events:
			if match(evt) {
				return evt
			}
		case <-deadline:
			t.Fatal("timed out waiting for event")
			return nil
		}
	}
}

func TestFetchSingleRecipeReturnsParsedObject(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodGet, "/api/v1/recipe/42/", http.StatusOK, `{"id":42,"name":"x"}`)

	recipe, err := f.service.FetchSingleRecipe(context.Background(), 42)
	if err != nil {
		t.Fatalf("fetch returned error: %v", err)
	}
	if recipe.ID != 42 || recipe.Name != "x" {
		t.Fatalf("unexpected recipe %+v", recipe)
	}

	req, _ := f.server.LastRequest()
	if req.Method != http.MethodGet || req.URL.Path != "/api/v1/recipe/42/" {
		t.Fatalf("unexpected request %s %s", req.Method, req.URL.Path)
	}

	if id, ok := f.service.Session().Selected(); !ok || id != 42 {
		t.Fatalf("expected session selection 42, got %d (%v)", id, ok)
	}

	f.waitFor(t, func(evt events.Event) bool {
		received, ok := evt.(events.RecipeReceived)
		return ok && received.Recipe.ID == 42
	})
}

func TestEnableRecipeNotFoundRejectsWithServerBody(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodPost, "/api/v1/recipe/7/enable/", http.StatusNotFound, `{"detail":"Not found."}`)

	_, err := f.service.EnableRecipe(context.Background(), 7)
	httpErr, ok := dispatch.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	if string(httpErr.Body) != `{"detail":"Not found."}` {
		t.Fatalf("unexpected error body %s", httpErr.Body)
	}

	active := f.manager.Active()
	if len(active) != 1 {
		t.Fatalf("expected one shown notification, got %d", len(active))
	}
	if active[0].Message != "Error enabling recipe." {
		t.Fatalf("unexpected notification message %q", active[0].Message)
	}
}

func TestDeleteRecipeYieldsDismissibleNotification(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodDelete, "/api/v1/recipe/5/", http.StatusNoContent, "")

	f.service.Session().Select(5)
	if err := f.service.DeleteRecipe(context.Background(), 5); err != nil {
		t.Fatalf("delete returned error: %v", err)
	}

	if _, ok := f.service.Session().Selected(); ok {
		t.Fatal("expected selection cleared after delete")
	}

	active := f.manager.Active()
	if len(active) != 1 || active[0].Message != "Recipe deleted." {
		t.Fatalf("unexpected notifications %+v", active)
	}

	f.manager.Dismiss(active[0].ID)
	if len(f.manager.Active()) != 0 {
		t.Fatal("expected notification to be dismissible")
	}

	f.waitFor(t, func(evt events.Event) bool {
		deleted, ok := evt.(events.RecipeDeleted)
		return ok && deleted.RecipeID == 5
	})
}

func TestFetchAllRecipesPassesFilters(t *testing.T) {
	f := newFixture(t)
	enabled := true
	f.server.RespondRaw(http.MethodGet, "/api/v1/recipe/?channels=beta&enabled=true", http.StatusOK,
		`[{"id":1,"name":"a","enabled":true},{"id":2,"name":"b","enabled":true}]`)

	recipes, err := f.service.FetchAllRecipes(context.Background(), dispatch.RecipeFilters{
		Enabled:  &enabled,
		Channels: []string{"beta"},
	})
	if err != nil {
		t.Fatalf("fetch returned error: %v", err)
	}
	if len(recipes) != 2 || recipes[0].Name != "a" {
		t.Fatalf("unexpected recipes %+v", recipes)
	}
}

func TestAddRecipeSendsPayloadAndSelectsResult(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodPost, "/api/v1/recipe/", http.StatusCreated,
		`{"id":9,"name":"Terms Banner","enabled":false}`)

	recipe, err := f.service.AddRecipe(context.Background(), map[string]any{"name": "Terms Banner"})
	if err != nil {
		t.Fatalf("add returned error: %v", err)
	}
	if recipe.ID != 9 {
		t.Fatalf("unexpected recipe %+v", recipe)
	}

	_, body := f.server.LastRequest()
	if string(body) != `{"name":"Terms Banner"}` {
		t.Fatalf("unexpected request body %s", body)
	}
	if id, ok := f.service.Session().Selected(); !ok || id != 9 {
		t.Fatalf("expected selection 9, got %d (%v)", id, ok)
	}

	active := f.manager.Active()
	if len(active) != 1 || active[0].Message != "Recipe added." {
		t.Fatalf("unexpected notifications %+v", active)
	}
}

func TestFetchRecipeHistoryDecodesRevisions(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodGet, "/api/v1/recipe/3/history/", http.StatusOK,
		`[{"id":"rev2","recipe":{"id":3,"name":"b"}},{"id":"rev1","recipe":{"id":3,"name":"a"}}]`)

	revisions, err := f.service.FetchRecipeHistory(context.Background(), 3)
	if err != nil {
		t.Fatalf("history returned error: %v", err)
	}
	if len(revisions) != 2 || revisions[0].ID != "rev2" {
		t.Fatalf("unexpected revisions %+v", revisions)
	}
}

func TestGetCurrentUser(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodGet, "/api/v1/user/me/", http.StatusOK,
		`{"id":1,"first_name":"Jamie","last_name":"Doe","email":"jamie@example.com"}`)

	user, err := f.service.GetCurrentUser(context.Background())
	if err != nil {
		t.Fatalf("getCurrentUser returned error: %v", err)
	}
	if user.DisplayName() != "Jamie Doe" {
		t.Fatalf("unexpected display name %q", user.DisplayName())
	}
}

func TestDecodeFailureIsParseError(t *testing.T) {
	f := newFixture(t)
	f.server.RespondRaw(http.MethodGet, "/api/v1/recipe/", http.StatusOK, `{"not":"an array"}`)

	_, err := f.service.FetchAllRecipes(context.Background(), dispatch.RecipeFilters{})
	if !errors.Is(err, dispatch.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
