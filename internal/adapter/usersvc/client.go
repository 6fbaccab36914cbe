package usersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/abcall/clients/internal/core/domain"
	"github.com/abcall/clients/internal/core/facade"
	"github.com/abcall/clients/internal/core/service"
)

const collaborator = "user service"

// maxErrorBody caps how much of an error response is kept in the ServiceError message.
const maxErrorBody = 512

// Config configures the user-service client.
type Config struct {
	BaseURL string
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:          baseURL,
		Timeout:          5 * time.Second,
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
	}
}

// Client talks to the user microservice over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*facade.UserRecord]
	logger     *slog.Logger
}

var _ facade.UserFacade = (*Client)(nil)

// NewClient creates a user-service client.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}

	c.breaker = gobreaker.NewCircuitBreaker[*facade.UserRecord](gobreaker.Settings{
		Name:    collaborator,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// A 4xx answer means the service is up, and a caller giving up says nothing about it
		IsSuccessful: func(err error) bool {
			if errors.Is(err, context.Canceled) {
				return true
			}
			var serviceErr *service.ServiceError
			if errors.As(err, &serviceErr) {
				return serviceErr.Code < http.StatusInternalServerError
			}
			return err == nil
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				"collaborator", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})

	return c
}

// GetUser fetches the account of subject. An account the service does not know
// is returned as nil with no error. Every failure is reported as a collaborator error.
func (c *Client) GetUser(ctx context.Context, subject string) (*facade.UserRecord, error) {
	if subject == "" {
		return nil, domain.NewCollaboratorError(collaborator, errors.New("empty subject"))
	}

	user, err := c.breaker.Execute(func() (*facade.UserRecord, error) {
		return c.fetch(ctx, subject)
	})
	if err != nil {
		return nil, domain.NewCollaboratorError(collaborator, err)
	}
	return user, nil
}

func (c *Client) fetch(ctx context.Context, subject string) (*facade.UserRecord, error) {
	endpoint := fmt.Sprintf("%s/user/%s", c.baseURL, url.PathEscape(subject))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call user service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, service.NewServiceError(resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var user facade.UserRecord
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}
	if user.Subject == "" {
		user.Subject = subject
	}

	return &user, nil
}
