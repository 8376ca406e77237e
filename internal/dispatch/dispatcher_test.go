package dispatch_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"recipectl/internal/api"
	"recipectl/internal/dispatch"
	"recipectl/internal/events"
	"recipectl/internal/logging"
	"recipectl/internal/testsupport"
)

type recordingNotifier struct {
	shown []api.Notification
}

func (n *recordingNotifier) Show(notification api.Notification) string {
	n.shown = append(n.shown, notification)
	return "n1"
}

func collect(ch <-chan events.Event, n int, t *testing.T) []events.Event {
	t.Helper()
	out := make([]events.Event, 0, n)
	for len(out) < n {
		select {
		case evt := <-ch:
			out = append(out, evt)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out after %d of %d events", len(out), n)
		}
	}
	return out
}

func newDispatcher(t *testing.T, server *testsupport.RecipeServer, notifier dispatch.Notifier) (*dispatch.Dispatcher, <-chan events.Event) {
	t.Helper()
	bus := events.NewBus()
	t.Cleanup(bus.Close)
	ch, cancel := bus.Subscribe()
	t.Cleanup(cancel)
	d := dispatch.New(server.URL(), "csrf-abc", server.Client(), bus, notifier, logging.NewNop(),
		dispatch.WithCorrelationIDs(func() string { return "corr-1" }))
	return d, ch
}

func TestExecuteSuccessEmitsStartThenSuccess(t *testing.T) {
	server := testsupport.NewRecipeServer(t)
	server.RespondRaw(http.MethodGet, "/api/v1/recipe/42/", http.StatusOK, `{"id":42,"name":"x"}`)

	d, ch := newDispatcher(t, server, nil)

	body, err := d.Execute(context.Background(), dispatch.OpFetchSingleRecipe, dispatch.Params{RecipeID: 42})
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if string(body) != `{"id":42,"name":"x"}` {
		t.Fatalf("unexpected body %s", body)
	}

	evts := collect(ch, 2, t)
	started, ok := evts[0].(events.RequestStarted)
	if !ok {
		t.Fatalf("expected RequestStarted first, got %T", evts[0])
	}
	if started.Operation != "fetchSingleRecipe" || started.CorrelationID != "corr-1" {
		t.Fatalf("unexpected start event %+v", started)
	}
	finished, ok := evts[1].(events.RequestFinished)
	if !ok {
		t.Fatalf("expected RequestFinished second, got %T", evts[1])
	}
	if finished.Status != events.RequestSucceeded || finished.HTTPStatus != http.StatusOK {
		t.Fatalf("unexpected finish event %+v", finished)
	}
}

func TestExecuteSendsMergedDefaults(t *testing.T) {
	server := testsupport.NewRecipeServer(t)
	server.RespondRaw(http.MethodPost, "/api/v1/recipe/", http.StatusCreated, `{"id":1,"name":"n"}`)

	d, _ := newDispatcher(t, server, nil)

	_, err := d.Execute(context.Background(), dispatch.OpAddRecipe, dispatch.Params{Payload: map[string]string{"name": "n"}})
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}

	req, body := server.LastRequest()
	if req == nil {
		t.Fatal("server saw no request")
	}
	if got := req.Header.Get("X-CSRFToken"); got != "csrf-abc" {
		t.Fatalf("unexpected CSRF header %q", got)
	}
	if got := req.Header.Get("Accept"); got != "application/json" {
		t.Fatalf("unexpected Accept header %q", got)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected Content-Type header %q", got)
	}
	if string(body) != `{"name":"n"}` {
		t.Fatalf("unexpected request body %s", body)
	}
}

func TestExecuteErrorRejectsWithParsedBody(t *testing.T) {
	server := testsupport.NewRecipeServer(t)
	server.RespondRaw(http.MethodPost, "/api/v1/recipe/7/enable/", http.StatusNotFound, `{"detail":"Not found."}`)

	notifier := &recordingNotifier{}
	d, ch := newDispatcher(t, server, notifier)

	_, err := d.Execute(context.Background(), dispatch.OpEnableRecipe, dispatch.Params{RecipeID: 7})
	if !errors.Is(err, dispatch.ErrHTTP) {
		t.Fatalf("expected ErrHTTP, got %v", err)
	}
	httpErr, ok := dispatch.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %T", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Fatalf("unexpected status %d", httpErr.Status)
	}
	if string(httpErr.Body) != `{"detail":"Not found."}` {
		t.Fatalf("unexpected error body %s", httpErr.Body)
	}

	if len(notifier.shown) != 1 {
		t.Fatalf("expected one notification, got %d", len(notifier.shown))
	}
	if notifier.shown[0].Message != "Error enabling recipe." {
		t.Fatalf("unexpected notification %q", notifier.shown[0].Message)
	}
	if notifier.shown[0].Kind != api.NotificationError {
		t.Fatalf("unexpected notification kind %q", notifier.shown[0].Kind)
	}

	evts := collect(ch, 2, t)
	if _, ok := evts[0].(events.RequestStarted); !ok {
		t.Fatalf("expected RequestStarted first, got %T", evts[0])
	}
	finished, ok := evts[1].(events.RequestFinished)
	if !ok {
		t.Fatalf("expected RequestFinished second, got %T", evts[1])
	}
	if finished.Status != events.RequestFailed {
		t.Fatalf("unexpected finish status %q", finished.Status)
	}
}

func TestExecuteNoContentReturnsEmptyBody(t *testing.T) {
	server := testsupport.NewRecipeServer(t)
	server.RespondRaw(http.MethodDelete, "/api/v1/recipe/5/", http.StatusNoContent, "")

	notifier := &recordingNotifier{}
	d, _ := newDispatcher(t, server, notifier)

	body, err := d.Execute(context.Background(), dispatch.OpDeleteRecipe, dispatch.Params{RecipeID: 5})
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if body != nil {
		t.Fatalf("expected nil body for 204, got %s", body)
	}
	if len(notifier.shown) != 1 || notifier.shown[0].Message != "Recipe deleted." {
		t.Fatalf("expected deletion notification, got %+v", notifier.shown)
	}
}

func TestExecuteMissingParamPublishesNoEvents(t *testing.T) {
	server := testsupport.NewRecipeServer(t)
	d, ch := newDispatcher(t, server, nil)

	_, err := d.Execute(context.Background(), dispatch.OpFetchSingleRecipe, dispatch.Params{})
	if !errors.Is(err, dispatch.ErrMissingParam) {
		t.Fatalf("expected ErrMissingParam, got %v", err)
	}

	select {
	case evt := <-ch:
		t.Fatalf("expected no events, got %T", evt)
	case <-time.After(50 * time.Millisecond):
	}
	if len(server.Requests()) != 0 {
		t.Fatal("expected no request to reach the server")
	}
}

func TestExecuteNetworkFailure(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch, cancel := bus.Subscribe()
	defer cancel()

	d := dispatch.New("http://127.0.0.1:1", "", nil, bus, nil, logging.NewNop())

	_, err := d.Execute(context.Background(), dispatch.OpFetchAllRecipes, dispatch.Params{})
	if !errors.Is(err, dispatch.ErrNetwork) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}

	evts := collect(ch, 2, t)
	finished, ok := evts[1].(events.RequestFinished)
	if !ok {
		t.Fatalf("expected RequestFinished, got %T", evts[1])
	}
	if finished.Status != events.RequestFailed {
		t.Fatalf("unexpected finish status %q", finished.Status)
	}
}

func TestExecuteNonJSONErrorBodyIsParseFailure(t *testing.T) {
	server := testsupport.NewRecipeServer(t)
	server.RespondRaw(http.MethodGet, "/api/v1/user/me/", http.StatusInternalServerError, "<html>boom</html>")

	d, _ := newDispatcher(t, server, nil)

	_, err := d.Execute(context.Background(), dispatch.OpGetCurrentUser, dispatch.Params{})
	if !errors.Is(err, dispatch.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}
