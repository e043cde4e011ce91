package attributes

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers the three attribute route groups at the router root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Route("/attributes", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/{id}", h.show)
		r.Get("/code/{code}", h.showByCode)
		r.Put("/{id}", h.update)
		r.Post("/{id}/groups/{group}", h.linkGroup)
	})
	r.Route("/attribute_options", func(r chi.Router) {
		r.Get("/", h.listOptions)
		r.Post("/", h.createOption)
		r.Get("/{id}", h.showOption)
		r.Get("/code/{code}", h.showOptionsByCode)
		r.Put("/{id}", h.updateOption)
	})
	r.Route("/attribute_groups", func(r chi.Router) {
		r.Get("/", h.listGroups)
		r.Post("/", h.createGroup)
		r.Get("/{id}", h.showGroup)
		r.Get("/name/{name}", h.showGroupByName)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	attrs, err := h.service.List(r.Context(), shared.ListWindow{Skip: skip, Limit: limit})
	if err != nil {
		h.logger.Error("list attributes", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if attrs == nil {
		attrs = []Attribute{}
	}
	httpx.JSON(w, http.StatusOK, attrs)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid attribute ID")
		return
	}
	attribute, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, attribute)
}

func (h *Handler) showByCode(w http.ResponseWriter, r *http.Request) {
	attribute, err := h.service.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, attribute)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateAttributeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	attribute, err := h.service.Create(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, attribute)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid attribute ID")
		return
	}
	var req UpdateAttributeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	attribute, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, attribute)
}

func (h *Handler) linkGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid attribute ID")
		return
	}
	if err := h.service.LinkToGroup(r.Context(), id, chi.URLParam(r, "group")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "attribute linked"})
}

func (h *Handler) listOptions(w http.ResponseWriter, r *http.Request) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	options, err := h.service.ListOptions(r.Context(), shared.ListWindow{Skip: skip, Limit: limit})
	if err != nil {
		h.logger.Error("list attribute options", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if options == nil {
		options = []AttributeOption{}
	}
	httpx.JSON(w, http.StatusOK, options)
}

func (h *Handler) showOption(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid option ID")
		return
	}
	option, err := h.service.GetOption(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, option)
}

func (h *Handler) showOptionsByCode(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.OptionsByAttributeCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if options == nil {
		options = []AttributeOption{}
	}
	httpx.JSON(w, http.StatusOK, options)
}

func (h *Handler) createOption(w http.ResponseWriter, r *http.Request) {
	var req CreateOptionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	option, err := h.service.CreateOption(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, option)
}

func (h *Handler) updateOption(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid option ID")
		return
	}
	var req UpdateOptionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	option, err := h.service.UpdateOption(r.Context(), id, req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, option)
}

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.service.ListGroups(r.Context())
	if err != nil {
		h.logger.Error("list attribute groups", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if groups == nil {
		groups = []AttributeGroup{}
	}
	httpx.JSON(w, http.StatusOK, groups)
}

func (h *Handler) showGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid group ID")
		return
	}
	group, err := h.service.GetGroup(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

func (h *Handler) showGroupByName(w http.ResponseWriter, r *http.Request) {
	group, err := h.service.GetGroupByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	group, err := h.service.CreateGroup(r.Context(), req)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, group)
}
