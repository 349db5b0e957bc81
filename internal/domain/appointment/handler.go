package appointment

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/auth"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/pagination"
)

type Handler struct {
	svc      *Service
	pageSize int
}

func NewHandler(svc *Service, pageSize int) *Handler {
	return &Handler{svc: svc, pageSize: pageSize}
}

// RegisterRoutes mounts the appointment routes. Doctors and receptionists
// share the whole desk: booking, editing, status changes and deletion.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleReceptionist))
	g.GET("/appointments", h.ListAppointments)
	g.GET("/appointments/:id", h.GetAppointment)
	g.POST("/appointments", h.CreateAppointment)
	g.PUT("/appointments/:id", h.UpdateAppointment)
	g.PATCH("/appointments/:id/status", h.UpdateStatus)
	g.DELETE("/appointments/:id", h.DeleteAppointment)
}

func (h *Handler) state(c echo.Context) (listview.State, error) {
	state, err := pagination.StateFromContext(c, h.pageSize, listview.Ascending)
	if err != nil {
		return state, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return state, nil
}

func (h *Handler) ListAppointments(c echo.Context) error {
	state, err := h.state(c)
	if err != nil {
		return err
	}
	page, err := h.svc.List(c.Request().Context(), state)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page.Items, page.Meta, c.Request().URL.Path, c.QueryParams()))
}

func (h *Handler) GetAppointment(c echo.Context) error {
	a, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, a)
}

func (h *Handler) CreateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &a); err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, a)
}

func (h *Handler) UpdateAppointment(c echo.Context) error {
	var a Appointment
	if err := c.Bind(&a); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	a.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &a); err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, a)
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus changes the status and answers with the reloaded list page
// selected by the query string, so the caller can redraw without a second
// request.
func (h *Handler) UpdateStatus(c echo.Context) error {
	var req statusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	state, err := h.state(c)
	if err != nil {
		return err
	}
	page, err := h.svc.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, state)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page.Items, page.Meta, listPath(c), c.QueryParams()))
}

// listPath maps /api/v1/appointments/:id/status back to the list path.
func listPath(c echo.Context) string {
	return strings.TrimSuffix(c.Request().URL.Path, "/"+c.Param("id")+"/status")
}

func (h *Handler) DeleteAppointment(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
