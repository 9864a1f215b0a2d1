package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/obradev/obra/internal/domain"
)

// TokenSource supplies the bearer token attached to every request.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client provides access to the construction-management backend.
type Client interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (string, error)

	// ListProjects fetches the full project list visible to the caller.
	ListProjects(ctx context.Context) ([]*domain.Project, error)

	// GetProject fetches a single project with all nested collections.
	GetProject(ctx context.Context, id string) (*domain.Project, error)

	// CreateProject registers a new project and returns the stored version.
	CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error)

	// SaveProject commits a batch of pending changes for one project.
	// It satisfies session.Persister.
	SaveProject(ctx context.Context, p *domain.Project, changes []domain.PendingChange) error

	// ListNotifications fetches the caller's notification feed.
	ListNotifications(ctx context.Context) ([]*domain.Notification, error)

	// MarkNotificationRead marks one notification as read.
	MarkNotificationRead(ctx context.Context, id string) error

	// MarkAllNotificationsRead marks every notification for a project read.
	MarkAllNotificationsRead(ctx context.Context, projectID string) error

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
}

// restClient implements Client over the backend's JSON REST API.
type restClient struct {
	cfg      Config
	http     *http.Client
	tokens   TokenSource
	observer Observer
}

// NewClient creates a Client for the configured backend. tokens may be nil
// for pre-login calls; authenticated endpoints then fail with ErrUnauthorized
// server-side.
func NewClient(cfg Config, tokens TokenSource, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &restClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		tokens:   tokens,
		observer: observer,
	}
}

func (c *restClient) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	err := c.call(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp, c.cfg.TimeoutMs)
	if err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *restClient) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	var dtos []projectDTO
	if err := c.call(ctx, http.MethodGet, "/projects", nil, &dtos, c.cfg.TimeoutMs); err != nil {
		return nil, err
	}
	projects := make([]*domain.Project, 0, len(dtos))
	for _, d := range dtos {
		projects = append(projects, toDomainProject(d))
	}
	return projects, nil
}

func (c *restClient) GetProject(ctx context.Context, id string) (*domain.Project, error) {
	var d projectDTO
	if err := c.call(ctx, http.MethodGet, "/projects/"+url.PathEscape(id), nil, &d, c.cfg.TimeoutMs); err != nil {
		return nil, err
	}
	return toDomainProject(d), nil
}

func (c *restClient) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	var d projectDTO
	if err := c.call(ctx, http.MethodPost, "/projects/create", fromDomainProject(p), &d, c.cfg.SaveTimeoutMs); err != nil {
		return nil, err
	}
	return toDomainProject(d), nil
}

func (c *restClient) SaveProject(ctx context.Context, p *domain.Project, changes []domain.PendingChange) error {
	body := saveProjectRequest{
		Project: fromDomainProject(p),
		Changes: make([]changeDTO, 0, len(changes)),
	}
	for _, ch := range changes {
		body.Changes = append(body.Changes, fromDomainChange(ch))
	}
	return c.call(ctx, http.MethodPut, "/projects/"+url.PathEscape(p.ID), body, nil, c.cfg.SaveTimeoutMs)
}

func (c *restClient) ListNotifications(ctx context.Context) ([]*domain.Notification, error) {
	var dtos []notificationDTO
	if err := c.call(ctx, http.MethodGet, "/notifications", nil, &dtos, c.cfg.TimeoutMs); err != nil {
		return nil, err
	}
	notifications := make([]*domain.Notification, 0, len(dtos))
	for _, d := range dtos {
		notifications = append(notifications, toDomainNotification(d))
	}
	return notifications, nil
}

func (c *restClient) MarkNotificationRead(ctx context.Context, id string) error {
	return c.call(ctx, http.MethodPut, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, c.cfg.TimeoutMs)
}

func (c *restClient) MarkAllNotificationsRead(ctx context.Context, projectID string) error {
	return c.call(ctx, http.MethodPut, "/notifications/"+url.PathEscape(projectID)+"/mark_all_read", nil, nil, c.cfg.TimeoutMs)
}

func (c *restClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/health", nil)
	if err != nil {
		return false
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// call performs one JSON request/response round trip. out may be nil for
// endpoints whose body is ignored. There is no automatic retry: failed saves
// are retried only by explicit user action.
func (c *restClient) call(ctx context.Context, method, path string, in, out any, timeoutMs int) error {
	start := time.Now()
	err := c.doRequest(ctx, method, path, in, out, timeoutMs)

	c.observer.OnCallComplete(CallEvent{
		Method:    method,
		Path:      path,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *restClient) doRequest(ctx context.Context, method, path string, in, out any, timeoutMs int) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return fmt.Errorf("loading token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrTimeout
		}
		if isConnectionError(err) {
			return ErrBackendUnavailable
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return fmt.Errorf("backend returned status %d: %s", resp.StatusCode, string(respBody))
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
