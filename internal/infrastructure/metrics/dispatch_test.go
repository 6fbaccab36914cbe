package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"github.com/abcall/clients/internal/core/dependency"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: OutcomeSuccess},
		{name: "not found", err: domain.NewNotFoundError("1"), want: OutcomeNotFound},
		{name: "validation", err: domain.NewValidationError("f", "bad"), want: OutcomeInvalid},
		{name: "unhandled", err: &dispatch.UnhandledMessageTypeError{Kind: dispatch.KindQuery, Name: "x"}, want: OutcomeUnhandled},
		{name: "unresolved", err: &dependency.ResolutionError{Capability: dependency.UserFacade, Reason: "no binding"}, want: OutcomeUnresolved},
		{name: "collaborator", err: domain.NewCollaboratorError("user service", errors.New("down")), want: OutcomeCollaborator},
		{name: "wrapped collaborator", err: fmt.Errorf("query: %w", domain.NewCollaboratorError("db", errors.New("locked"))), want: OutcomeCollaborator},
		{name: "other", err: errors.New("boom"), want: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}

func TestDispatchObserver(t *testing.T) {
	reg := prometheus.NewRegistry()
	o := NewDispatchObserver(reg)

	o.Observe(context.Background(), dispatch.KindCommand, "clients.delete", time.Millisecond, nil)
	o.Observe(context.Background(), dispatch.KindCommand, "clients.delete", time.Millisecond, domain.NewNotFoundError("1"))
	o.Observe(context.Background(), dispatch.KindCommand, "clients.delete", time.Millisecond, domain.NewNotFoundError("2"))

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, `clients_dispatch_total{kind="command",message="clients.delete",outcome="success"} 1`)
	assert.Contains(t, body, `clients_dispatch_total{kind="command",message="clients.delete",outcome="not_found"} 2`)
	assert.Contains(t, body, `clients_dispatch_duration_seconds_count{kind="command",message="clients.delete"} 3`)
}
