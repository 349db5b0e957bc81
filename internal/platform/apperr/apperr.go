// Package apperr holds the error kinds shared by the data sources and the
// HTTP handlers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

var (
	// ErrNotFound is returned by repositories when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrUpstream matches failures of the remote data source.
	ErrUpstream = errors.New("data source unavailable")
)

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// Validator accumulates field problems.
type Validator struct {
	problems []string
}

// Require records a problem when value is blank.
func (v *Validator) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.problems = append(v.problems, fmt.Sprintf("%s is required", field))
	}
}

// Check records msg when ok is false.
func (v *Validator) Check(ok bool, msg string) {
	if !ok {
		v.problems = append(v.problems, msg)
	}
}

// Err returns a *ValidationError, or nil if nothing failed.
func (v *Validator) Err() error {
	if len(v.problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: v.problems}
}

// HTTPError maps err onto the status a handler should return.
func HTTPError(err error) *echo.HTTPError {
	var (
		validation *ValidationError
		loadErr    *listview.LoadError
		mutErr     *listview.MutationError
	)
	switch {
	case errors.Is(err, ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.As(err, &validation):
		return echo.NewHTTPError(http.StatusBadRequest, validation.Error())
	case errors.As(err, &loadErr), errors.As(err, &mutErr), errors.Is(err, ErrUpstream):
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
