package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahmedabddayme3752/cabinet-medicale/pkg/listview"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Params holds page parameters extracted from a request.
type Params struct {
	Page     int
	PageSize int
}

// FromContext extracts page parameters from the echo context. prefix selects
// an alternate parameter family ("history_" reads history_page and
// history_page_size) so a single request can drive more than one list.
func FromContext(c echo.Context, prefix string, defaultSize int) Params {
	if defaultSize <= 0 {
		defaultSize = DefaultPageSize
	}

	page, _ := strconv.Atoi(c.QueryParam(prefix + "page"))
	if page <= 0 {
		page = 1
	}

	size, _ := strconv.Atoi(c.QueryParam(prefix + "page_size"))
	if size <= 0 {
		size = defaultSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}

	return Params{Page: page, PageSize: size}
}

// StateFromContext decodes a full list view state (filters, order and page)
// from query parameters:
//
//	q, category, gender, status, range, from, to, order, page, page_size
//
// Dates use the YYYY-MM-DD form.
func StateFromContext(c echo.Context, defaultSize int, defaultOrder listview.Order) (listview.State, error) {
	pg := FromContext(c, "", defaultSize)
	state := listview.State{
		Page:     pg.Page,
		PageSize: pg.PageSize,
		Order:    defaultOrder,
	}

	if o := c.QueryParam("order"); o != "" {
		order, err := listview.ParseOrder(o)
		if err != nil {
			return state, err
		}
		state.Order = order
	}

	criteria := listview.Criteria{
		Term:     c.QueryParam("q"),
		Category: c.QueryParam("category"),
		Status:   strings.ToLower(c.QueryParam("status")),
	}
	if g := c.QueryParam("gender"); g != "" && criteria.Category == "" {
		criteria.Category = strings.ToUpper(g)
	}

	mode, err := listview.ParseRangeMode(c.QueryParam("range"))
	if err != nil {
		return state, err
	}
	if criteria.From, err = parseDateParam(c, "from"); err != nil {
		return state, err
	}
	if criteria.To, err = parseDateParam(c, "to"); err != nil {
		return state, err
	}
	state.Criteria = criteria.WithRange(mode)

	return state, nil
}

func parseDateParam(c echo.Context, name string) (*time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

// Response wraps a paginated API response.
type Response struct {
	Data  interface{}       `json:"data"`
	Meta  listview.PageMeta `json:"meta"`
	Links []Link            `json:"links,omitempty"`
}

// NewResponse builds the list envelope. query is the request's query string;
// its filter and order parameters are carried into every link.
func NewResponse(data interface{}, meta listview.PageMeta, basePath string, query url.Values) *Response {
	return &Response{Data: data, Meta: meta, Links: Links(basePath, query, meta)}
}

// Links builds self/next/previous URLs for a list page. basePath should be
// the request path (e.g., "/api/v1/patients"). Every parameter of query
// except page and page_size is kept, so a link stays on the same filtered
// view.
func Links(basePath string, query url.Values, meta listview.PageMeta) []Link {
	pageURL := func(page int) string {
		v := url.Values{}
		for k, vals := range query {
			if k == "page" || k == "page_size" {
				continue
			}
			v[k] = append([]string(nil), vals...)
		}
		v.Set("page", strconv.Itoa(page))
		v.Set("page_size", strconv.Itoa(meta.PageSize))
		return basePath + "?" + v.Encode()
	}

	links := []Link{{Relation: "self", URL: pageURL(meta.CurrentPage)}}
	if meta.HasNext {
		links = append(links, Link{Relation: "next", URL: pageURL(meta.CurrentPage + 1)})
	}
	if meta.HasPrevious {
		links = append(links, Link{Relation: "previous", URL: pageURL(meta.CurrentPage - 1)})
	}
	return links
}

// Link represents a single pagination link entry.
type Link struct {
	Relation string `json:"relation"`
	URL      string `json:"url"`
}
