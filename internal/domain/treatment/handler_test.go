package treatment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHandler_CreateTreatment(t *testing.T) {
	svc, repo := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	body := `{"patient_id":"p1","medication":"Paracetamol","dosage":"1g","frequency":"2x/jour","start_date":"2024-02-01","prescribed_by":"Dr. Ba"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/treatments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	if err := h.CreateTreatment(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if len(repo.items) != 1 {
		t.Errorf("expected 1 stored treatment, got %d", len(repo.items))
	}
}

func TestHandler_CreateTreatment_EndBeforeStart(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()

	body := `{"patient_id":"p1","medication":"Paracetamol","dosage":"1g","frequency":"2x/jour","start_date":"2024-02-01","end_date":"2024-01-01","prescribed_by":"Dr. Ba"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/treatments", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	err := h.CreateTreatment(e.NewContext(req, httptest.NewRecorder()))
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_ListTreatments(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	if err := svc.Create(context.Background(), validTreatment()); err != nil {
		t.Fatal(err)
	}

	for _, tc := range []struct {
		patient string
		want    int
	}{{"p1", 1}, {"p9", 0}} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/patients/"+tc.patient+"/treatments", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(tc.patient)

		if err := h.ListTreatments(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var resp struct {
			Data []Treatment `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Data == nil || len(resp.Data) != tc.want {
			t.Errorf("patient %s: expected %d treatments, got %v", tc.patient, tc.want, resp.Data)
		}
	}
}

func TestHandler_GetTreatment_NotFound(t *testing.T) {
	svc, _ := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/treatments/nope", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetTreatment(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}
