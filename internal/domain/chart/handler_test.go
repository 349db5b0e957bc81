package chart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_GetDetails(t *testing.T) {
	h := NewHandler(newTestService(&stubAppointments{items: history(5)}, nil), DefaultHistorySize)
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/p1/details?history_page=2&page=7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("p1")

	if err := h.GetDetails(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Patient struct {
			ID string `json:"id"`
		} `json:"patient"`
		History struct {
			Items []struct {
				ID string `json:"id"`
			} `json:"items"`
			Meta struct {
				CurrentPage int `json:"current_page"`
				TotalPages  int `json:"total_pages"`
			} `json:"meta"`
		} `json:"history"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Patient.ID != "p1" {
		t.Errorf("unexpected patient %q", resp.Patient.ID)
	}
	if resp.History.Meta.CurrentPage != 2 || resp.History.Meta.TotalPages != 2 {
		t.Errorf("unexpected history meta %+v", resp.History.Meta)
	}
	if len(resp.History.Items) != 2 || resp.History.Items[0].ID != "a2" {
		t.Errorf("unexpected history items %+v", resp.History.Items)
	}
}

func TestHandler_GetDetails_NotFound(t *testing.T) {
	h := NewHandler(newTestService(&stubAppointments{}, nil), DefaultHistorySize)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/zz/details", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("zz")

	err := h.GetDetails(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
