package patient

import (
	"net/http"
	"time"

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

func (h *Handler) RegisterRoutes(api *echo.Group) {
	read := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleReceptionist))
	read.GET("/patients", h.ListPatients)
	read.GET("/patients/:id", h.GetPatient)

	write := api.Group("", auth.RequireRole(auth.RoleDoctor, auth.RoleReceptionist))
	write.POST("/patients", h.CreatePatient)
	write.PUT("/patients/:id", h.UpdatePatient)
	write.DELETE("/patients/:id", h.DeletePatient)
}

// patientView adds the computed age to a patient.
type patientView struct {
	*Patient
	Age *int `json:"age,omitempty"`
}

func withAge(p *Patient, now time.Time) patientView {
	v := patientView{Patient: p}
	if age, ok := p.Age(now); ok {
		v.Age = &age
	}
	return v
}

func (h *Handler) ListPatients(c echo.Context) error {
	state, err := pagination.StateFromContext(c, h.pageSize, listview.Unsorted)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	page, err := h.svc.List(c.Request().Context(), state)
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(page.Items, page.Meta, c.Request().URL.Path, c.QueryParams()))
}

func (h *Handler) GetPatient(c echo.Context) error {
	p, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, withAge(p, time.Now()))
}

func (h *Handler) CreatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.Create(c.Request().Context(), &p); err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) UpdatePatient(c echo.Context) error {
	var p Patient
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = c.Param("id")
	if err := h.svc.Update(c.Request().Context(), &p); err != nil {
		return apperr.HTTPError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeletePatient(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return apperr.HTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
