package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abcall/clients/internal/api/dto"
	"github.com/abcall/clients/internal/api/middleware"
	"github.com/abcall/clients/internal/core/application/commands"
	"github.com/abcall/clients/internal/core/application/queries"
	"github.com/abcall/clients/internal/core/dispatch"
	"github.com/abcall/clients/internal/core/domain"
)

// Dispatcher is the part of the bus the handlers need.
type Dispatcher interface {
	ExecuteCommand(ctx context.Context, cmd dispatch.Command) (any, error)
	ExecuteQuery(ctx context.Context, query dispatch.Query) (dispatch.QueryResult, error)
}

type ClientHandler struct {
	bus    Dispatcher
	logger *slog.Logger
}

func NewClientHandler(bus Dispatcher, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{
		bus:    bus,
		logger: logger,
	}
}

// ListClients handles GET /clients
func (h *ClientHandler) ListClients(c *gin.Context) {
	clients, err := h.listClients(c)
	if err != nil {
		h.respondError(c, err, "fetching")
		return
	}

	response := make([]dto.ClientResponse, len(clients))
	for i, client := range clients {
		response[i] = dto.ToClientResponse(client)
	}

	c.JSON(http.StatusOK, response)
}

// ListClientsShort handles GET /clients/short
func (h *ClientHandler) ListClientsShort(c *gin.Context) {
	clients, err := h.listClients(c)
	if err != nil {
		h.respondError(c, err, "fetching")
		return
	}

	response := make([]dto.ClientShortResponse, len(clients))
	for i, client := range clients {
		response[i] = dto.ToClientShortResponse(client)
	}

	c.JSON(http.StatusOK, response)
}

// GetClient handles GET /client/:client_id
func (h *ClientHandler) GetClient(c *gin.Context) {
	id := c.Param("client_id")
	if id == "" {
		h.respondError(c, domain.NewValidationError("client_id", "Invalid client id"), "fetching")
		return
	}

	result, err := h.bus.ExecuteQuery(c.Request.Context(), queries.GetClientQuery{ClientID: id})
	if err != nil {
		h.respondError(c, err, "fetching")
		return
	}

	h.respondClient(c, result)
}

// MyClient handles GET /client/my
func (h *ClientHandler) MyClient(c *gin.Context) {
	claims, ok := middleware.GetAuthClaims(c)
	if !ok {
		h.respondError(c, domain.ErrUnauthorized, "fetching")
		return
	}

	result, err := h.bus.ExecuteQuery(c.Request.Context(), queries.GetMyClientQuery{UserSub: claims.Subject})
	if err != nil {
		h.respondError(c, err, "fetching")
		return
	}

	h.respondClient(c, result)
}

// CreateClient handles POST /client
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, dto.BindingError(err), "creating")
		return
	}

	h.logger.InfoContext(c.Request.Context(), "received create client request")

	result, err := h.bus.ExecuteCommand(c.Request.Context(), commands.NewCreateClientCommand(req.ToData()))
	if err != nil {
		h.respondError(c, err, "creating")
		return
	}

	client, ok := result.(*domain.Client)
	if !ok {
		h.respondError(c, errors.New("create command returned no client"), "creating")
		return
	}

	c.JSON(http.StatusCreated, dto.StatusResponse{
		Status:  dto.StatusOK,
		Message: "Client created successfully",
		Data:    dto.ToClientResponse(client),
	})
}

// UpdateClient handles PUT /client/:client_id
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := c.Param("client_id")
	if id == "" {
		h.respondError(c, domain.NewValidationError("client_id", "Invalid client id"), "updating")
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, domain.NewValidationError("", "Invalid request body"), "updating")
		return
	}

	data, err := dto.ParseUpdate(body)
	if err != nil {
		h.respondError(c, err, "updating")
		return
	}

	if _, err := h.bus.ExecuteCommand(c.Request.Context(), commands.NewUpdateClientCommand(id, data)); err != nil {
		h.respondError(c, err, "updating")
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusSuccess})
}

// DeleteClient handles DELETE /client/:client_id
func (h *ClientHandler) DeleteClient(c *gin.Context) {
	id := c.Param("client_id")
	if id == "" {
		h.respondError(c, domain.NewValidationError("client_id", "Invalid client id"), "deleting")
		return
	}

	if _, err := h.bus.ExecuteCommand(c.Request.Context(), commands.DeleteClientCommand{ClientID: id}); err != nil {
		h.respondError(c, err, "deleting")
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{Status: dto.StatusSuccess})
}

func (h *ClientHandler) listClients(c *gin.Context) ([]*domain.Client, error) {
	result, err := h.bus.ExecuteQuery(c.Request.Context(), queries.GetClientsQuery{})
	if err != nil {
		return nil, err
	}
	if result.IsEmpty() {
		return nil, nil
	}

	clients, ok := result.Result.([]*domain.Client)
	if !ok {
		return nil, errors.New("list query returned an unexpected result")
	}
	return clients, nil
}

func (h *ClientHandler) respondClient(c *gin.Context, result dispatch.QueryResult) {
	if result.IsEmpty() {
		h.respondError(c, domain.ErrNotFound, "fetching")
		return
	}

	client, ok := result.Result.(*domain.Client)
	if !ok {
		h.respondError(c, errors.New("client query returned an unexpected result"), "fetching")
		return
	}

	c.JSON(http.StatusOK, dto.StatusResponse{
		Status: dto.StatusSuccess,
		Data:   dto.ToClientResponse(client),
	})
}

// respondError maps an error to its status. Anything unexpected is logged
// and answered with a generic message naming the action.
func (h *ClientHandler) respondError(c *gin.Context, err error, action string) {
	var validationErr *domain.ValidationError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: validationErr.Message,
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, domain.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid request",
			Code:    http.StatusBadRequest,
		})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error:   "Not Found",
			Message: "Client not found",
			Code:    http.StatusNotFound,
		})
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authentication required",
			Code:    http.StatusUnauthorized,
		})
	case errors.Is(err, domain.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{
			Error:   "Forbidden",
			Message: "Access denied",
			Code:    http.StatusForbidden,
		})
	default:
		h.logger.ErrorContext(c.Request.Context(), "error "+action+" client",
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An error occurred while " + action + " the client",
			Code:    http.StatusInternalServerError,
		})
	}
}
