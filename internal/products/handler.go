package products

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ldrlegend/backend-pro/internal/attributes"
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

// MountRoutes registers product routes relative to the mount point.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/available-attributes", h.availableAttributes)
	r.Get("/enums/status", h.enumStatuses)
	r.Get("/enums/sim-types", h.enumSimTypes)
	r.Get("/enums/purchase-types", h.enumPurchaseTypes)
	r.Get("/enums/sku-types", h.enumSkuTypes)
	r.Get("/enums/data-types", h.enumDataTypes)
	r.Get("/code/{code}", h.showByCode)
	r.Get("/{id}", h.show)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.remove)
}

// parseFilters reads paging and the optional status / purchase_type equality
// filters. Unknown enum values are rejected rather than silently ignored.
func parseFilters(r *http.Request) (ListFilters, string) {
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	window := shared.ListWindow{Skip: skip, Limit: limit}.Clamp()
	filters := ListFilters{Skip: window.Skip, Limit: window.Limit}

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := Status(raw)
		if !validStatus(status) {
			return filters, "invalid status filter " + strconv.Quote(raw)
		}
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("purchase_type"); raw != "" {
		purchaseType := PurchaseType(raw)
		if !validPurchaseType(purchaseType) {
			return filters, "invalid purchase_type filter " + strconv.Quote(raw)
		}
		filters.PurchaseType = &purchaseType
	}
	return filters, ""
}

func validStatus(status Status) bool {
	for _, s := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

func validPurchaseType(purchaseType PurchaseType) bool {
	for _, p := range PurchaseTypes {
		if p == purchaseType {
			return true
		}
	}
	return false
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters, problem := parseFilters(r)
	if problem != "" {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", problem)
		return
	}

	if r.URL.Query().Get("dynamic_schema") == "true" {
		views, err := h.service.ListDynamic(r.Context(), filters)
		if err != nil {
			h.logger.Error("list products", slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		if views == nil {
			views = []View{}
		}
		httpx.JSON(w, http.StatusOK, views)
		return
	}

	productList, err := h.service.List(r.Context(), filters)
	if err != nil {
		h.logger.Error("list products", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if productList == nil {
		productList = []Product{}
	}
	httpx.JSON(w, http.StatusOK, productList)
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product ID")
		return
	}
	view, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) showByCode(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.GetByCode(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	view, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create product", slog.String("code", req.ProductCode), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product ID")
		return
	}
	var req UpdateProductRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "malformed request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	view, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update product", slog.Int64("id", id), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, view)
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "invalid product ID")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"detail": "Product deleted successfully"})
}

func (h *Handler) availableAttributes(w http.ResponseWriter, r *http.Request) {
	catalog, err := h.service.AvailableAttributes(r.Context())
	if err != nil {
		h.logger.Error("load product attribute catalog", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if catalog == nil {
		catalog = []attributes.CatalogAttribute{}
	}
	httpx.JSON(w, http.StatusOK, catalog)
}

func (h *Handler) enumStatuses(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, Statuses)
}

func (h *Handler) enumSimTypes(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, SimTypes)
}

func (h *Handler) enumPurchaseTypes(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, PurchaseTypes)
}

func (h *Handler) enumSkuTypes(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, SkuTypes)
}

func (h *Handler) enumDataTypes(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, DataTypes)
}
