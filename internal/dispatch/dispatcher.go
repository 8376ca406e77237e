package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"recipectl/internal/api"
	"recipectl/internal/events"
	"recipectl/internal/logging"
)

// csrfHeader is the anti-forgery header the backend requires on
// state-changing requests. It is sent on every call for uniformity.
const csrfHeader = "X-CSRFToken"

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Notifier receives the zero-or-one notification a dispatched call produces.
// The notifications package provides the production implementation.
type Notifier interface {
	Show(notification api.Notification) string
}

// Dispatcher executes operations against one recipe service. It is stateless
// between calls and safe for concurrent use; operations in flight at the
// same time carry no ordering guarantee relative to each other.
type Dispatcher struct {
	baseURL   string
	csrfToken string
	client    HTTPDoer
	bus       *events.Bus
	notifier  Notifier
	logger    *slog.Logger
	newID     func() string
}

// Option customizes dispatcher construction.
type Option func(*Dispatcher)

// WithCorrelationIDs overrides the correlation identifier generator, used by
// tests that need deterministic IDs.
func WithCorrelationIDs(generate func() string) Option {
	return func(d *Dispatcher) {
		if generate != nil {
			d.newID = generate
		}
	}
}

// New constructs a dispatcher. The CSRF token is injected here rather than
// read from ambient state; pass the empty string when the backend does not
// require one. A nil client falls back to http.DefaultClient and a nil
// notifier suppresses notifications.
func New(baseURL, csrfToken string, client HTTPDoer, bus *events.Bus, notifier Notifier, logger *slog.Logger, opts ...Option) *Dispatcher {
	if client == nil {
		client = http.DefaultClient
	}
	d := &Dispatcher{
		baseURL:   strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		csrfToken: strings.TrimSpace(csrfToken),
		client:    client,
		bus:       bus,
		notifier:  notifier,
		logger:    logging.NewComponentLogger(logger, "dispatch"),
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Execute runs one operation end-to-end and returns the raw response body.
// A 204 response yields a nil body. Lifecycle events bracket every executed
// call: RequestStarted, then the descriptor's notification when the outcome
// has one, then RequestFinished.
func (d *Dispatcher) Execute(ctx context.Context, op Operation, p Params) ([]byte, error) {
	desc, err := Resolve(op, p)
	if err != nil {
		return nil, err
	}

	correlationID := d.newID()
	logger := d.logger.With(
		logging.String(logging.FieldOperation, op.String()),
		logging.String(logging.FieldCorrelationID, correlationID),
	)

	d.bus.Publish(events.RequestStarted{Operation: op.String(), CorrelationID: correlationID})
	started := time.Now()

	resp, err := d.send(ctx, desc)
	if err != nil {
		d.finish(op, correlationID, desc.ErrorNotification, api.NotificationError, events.RequestFailed, 0)
		logger.Warn("request failed before a response arrived", logging.Error(err))
		return nil, fmt.Errorf("%w: %s: %v", ErrNetwork, op, err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		d.finish(op, correlationID, desc.ErrorNotification, api.NotificationError, events.RequestFailed, resp.StatusCode)
		logger.Warn("response body read failed", logging.Error(readErr))
		return nil, fmt.Errorf("%w: %s: read body: %v", ErrNetwork, op, readErr)
	}

	if resp.StatusCode >= 400 {
		d.finish(op, correlationID, desc.ErrorNotification, api.NotificationError, events.RequestFailed, resp.StatusCode)
		logger.Warn("request rejected",
			logging.Int(logging.FieldHTTPStatus, resp.StatusCode),
			logging.Duration("elapsed", time.Since(started)))
		return nil, errorFromResponse(op, resp.StatusCode, body)
	}

	d.finish(op, correlationID, desc.SuccessNotification, api.NotificationSuccess, events.RequestSucceeded, resp.StatusCode)
	logger.Debug("request completed",
		logging.Int(logging.FieldHTTPStatus, resp.StatusCode),
		logging.Duration("elapsed", time.Since(started)))

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	return body, nil
}

func (d *Dispatcher) send(ctx context.Context, desc Descriptor) (*http.Response, error) {
	var reader io.Reader
	if len(desc.Body) > 0 {
		reader = bytes.NewReader(desc.Body)
	}

	req, err := http.NewRequestWithContext(ctx, desc.Method, d.baseURL+desc.Path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if len(desc.Body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	if d.csrfToken != "" {
		req.Header.Set(csrfHeader, d.csrfToken)
	}
	return d.client.Do(req)
}

// finish publishes the optional notification before the completion event so
// subscribers always observe start, [notification], finished in that order.
func (d *Dispatcher) finish(op Operation, correlationID, message string, kind api.NotificationKind, status events.RequestStatus, httpStatus int) {
	if message != "" && d.notifier != nil {
		d.notifier.Show(api.Notification{Kind: kind, Message: message})
	}
	d.bus.Publish(events.RequestFinished{
		Operation:     op.String(),
		CorrelationID: correlationID,
		Status:        status,
		HTTPStatus:    httpStatus,
	})
}

func errorFromResponse(op Operation, status int, body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return &HTTPError{Operation: op.String(), Status: status}
	}
	if !json.Valid(trimmed) {
		return fmt.Errorf("%w: %s returned %d with a non-JSON body", ErrParse, op, status)
	}
	return &HTTPError{Operation: op.String(), Status: status, Body: json.RawMessage(trimmed)}
}
