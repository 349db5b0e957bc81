package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ahmedabddayme3752/cabinet-medicale/internal/platform/apperr"
)

type item struct {
	ID     string `json:"id,omitempty"`
	Name   string `json:"name"`
	Status string `json:"status,omitempty"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, zerolog.Nop())
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/appointments" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("patientId"); got != "7" {
			t.Errorf("expected patientId=7, got %q", got)
		}
		json.NewEncoder(w).Encode([]item{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}})
	})

	var out []item
	if err := c.List(context.Background(), "appointments", url.Values{"patientId": {"7"}}, &out); err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(out) != 2 || out[1].Name != "b" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestClient_CreateSendsJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var in item
		json.NewDecoder(r.Body).Decode(&in)
		in.ID = "99"
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(in)
	})

	var out item
	if err := c.Create(context.Background(), "patients", item{Name: "new"}, &out); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if out.ID != "99" || out.Name != "new" {
		t.Errorf("unexpected result %+v", out)
	}
}

func TestClient_PatchAndDelete(t *testing.T) {
	var seen []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPatch {
			body, _ := io.ReadAll(r.Body)
			if string(body) != `{"status":"completed"}` {
				t.Errorf("unexpected patch body %s", body)
			}
			w.Write([]byte(`{"id":"3","name":"x","status":"completed"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	var out item
	if err := c.Patch(context.Background(), "appointments", "3", map[string]string{"status": "completed"}, &out); err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	if out.Status != "completed" {
		t.Errorf("expected completed, got %q", out.Status)
	}
	if err := c.Delete(context.Background(), "appointments", "3"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if len(seen) != 2 || seen[0] != "PATCH /appointments/3" || seen[1] != "DELETE /appointments/3" {
		t.Errorf("unexpected requests %v", seen)
	}
}

func TestClient_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "{}", http.StatusNotFound)
	})

	var out item
	err := c.Get(context.Background(), "patients", "missing", &out)
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var te *TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusNotFound {
		t.Errorf("expected TransportError with 404, got %v", err)
	}
}

func TestClient_ServerError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "database locked", http.StatusInternalServerError)
	})

	var out []item
	err := c.List(context.Background(), "patients", nil, &out)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.StatusCode != http.StatusInternalServerError || te.Body != "database locked" {
		t.Errorf("unexpected error details %+v", te)
	}
	if errors.Is(err, apperr.ErrNotFound) {
		t.Error("a 500 must not match ErrNotFound")
	}
	if !errors.Is(err, apperr.ErrUpstream) {
		t.Error("a 500 should match ErrUpstream")
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	c := NewClient(srv.URL, time.Second, zerolog.Nop())

	var out []item
	err := c.List(context.Background(), "patients", nil, &out)
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.StatusCode != 0 {
		t.Errorf("expected no status code, got %d", te.StatusCode)
	}
}
