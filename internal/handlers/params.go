package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/benx421/points-exchange/internal/models"
	"github.com/oapi-codegen/runtime"
)

// PageInfo describes the window returned by a paginated listing
type PageInfo struct {
	Size           int `json:"size"`
	TotalPages     int `json:"totalPages"`
	TotalResources int `json:"totalResources"`
}

// PagedResponse wraps a listing requested with a page number
type PagedResponse[T any] struct {
	Results []T      `json:"results"`
	Page    PageInfo `json:"page"`
}

// bindQuery binds one optional form-style query parameter into dest, which
// must be a pointer to a pointer field
func bindQuery(query url.Values, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
		return fmt.Errorf("invalid query parameter %q: %w", name, err)
	}
	return nil
}

func bindPage(query url.Values) (models.Page, error) {
	var number, size *int
	if err := bindQuery(query, "page", &number); err != nil {
		return models.Page{}, err
	}
	if err := bindQuery(query, "size", &size); err != nil {
		return models.Page{}, err
	}

	var page models.Page
	if number != nil {
		if *number < 1 || *number > models.MaxPageNumber {
			return models.Page{}, fmt.Errorf("page must be between 1 and %d", models.MaxPageNumber)
		}
		page.Number = *number
	}
	if size != nil {
		if *size < 1 {
			return models.Page{}, fmt.Errorf("size must be at least 1")
		}
		page.Size = *size
	}
	return page, nil
}

// newPagedResponse builds the paginated envelope. totalPages rounds up.
func newPagedResponse[T any](page models.Page, results []T, total int) PagedResponse[T] {
	size := page.Limit()
	return PagedResponse[T]{
		Page: PageInfo{
			Size:           size,
			TotalPages:     (total + size - 1) / size,
			TotalResources: total,
		},
		Results: results,
	}
}

// writeList answers a listing: the paginated envelope when a page was
// requested, a bare array otherwise
func writeList[T any](w http.ResponseWriter, page models.Page, results []T, total int) {
	if results == nil {
		results = []T{}
	}
	if page.Number == 0 {
		writeJSON(w, http.StatusOK, results)
		return
	}
	writeJSON(w, http.StatusOK, newPagedResponse(page, results, total))
}
