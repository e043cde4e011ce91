package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	verify   func(http.Handler) http.Handler
	validate *validator.Validate
}

// NewHandler wires the user routes; verify guards the listing endpoint.
func NewHandler(logger *slog.Logger, service *Service, verify func(http.Handler) http.Handler) *Handler {
	return &Handler{logger: logger, service: service, verify: verify, validate: validator.New()}
}

func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.register)
	r.With(h.verify).Get("/", h.list)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userList, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if userList == nil {
		userList = []User{}
	}
	httpx.JSON(w, http.StatusOK, userList)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	user, err := h.service.Register(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
