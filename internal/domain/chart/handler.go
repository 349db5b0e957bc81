package chart

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/auth"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/pagination"
)

type Handler struct {
	svc         *Service
	historySize int
}

func NewHandler(svc *Service, historySize int) *Handler {
	return &Handler{svc: svc, historySize: historySize}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleReceptionist))
	read.GET("/patients/:id/details", h.GetDetails)
}

// GetDetails serves the patient chart. The history is paged with
// history_page and history_page_size.
func (h *Handler) GetDetails(c echo.Context) error {
	pg := pagination.FromContext(c, "history_", h.historySize)
	chart, err := h.svc.Details(c.Request().Context(), c.Param("id"), pg.Page, pg.PageSize)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, chart)
}
