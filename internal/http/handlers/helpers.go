package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/joboffer"
	"jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

func decodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return common.NewValidationError("Request body is required.", nil)
	}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return common.NewValidationError("Request body too large.", nil)
		case errors.Is(err, io.EOF):
			return common.NewValidationError("Request body is required.", nil)
		default:
			return common.NewValidationError("Malformed JSON body.", nil)
		}
	}
	return nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "Authentication credentials were not provided.", nil)
}

func errInvalidUUID(value string) error {
	return common.NewError(common.CodeValidation, fmt.Sprintf("%q is not a valid UUID.", value), nil)
}

// idFromPath parses the path segment at idx, counting from the first segment
// after the leading slash.
func idFromPath(r *http.Request, idx int) (common.UUID, error) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if idx >= len(parts) {
		return "", errInvalidUUID("")
	}
	id, err := common.ParseUUID(parts[idx])
	if err != nil {
		return "", errInvalidUUID(parts[idx])
	}
	return id, nil
}

func userID(w http.ResponseWriter, r *http.Request) (common.UUID, bool) {
	id, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		response.Error(w, errUnauthorized())
		return "", false
	}
	return id, true
}

// pageRequest reads page and page_size. A malformed page is reported like a
// page past the end; a malformed page_size falls back to the default.
func pageRequest(r *http.Request) (common.PageRequest, error) {
	query := r.URL.Query()
	page := 1
	if raw := strings.TrimSpace(query.Get("page")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return common.PageRequest{}, common.NewError(common.CodeNotFound, "Invalid page.", nil)
		}
		page = parsed
	}
	size := common.DefaultPageSize
	if raw := strings.TrimSpace(query.Get("page_size")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return common.NewPageRequest(page, size), nil
}

type pageLinks struct {
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
}

type pageInfo struct {
	Count    int64     `json:"count"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
	Links    pageLinks `json:"links"`
}

func newPageInfo[T any](r *http.Request, page *common.Page[T]) pageInfo {
	info := pageInfo{Count: page.Count, Page: page.Request.Page, PageSize: page.Request.PageSize}
	if page.Request.HasNext(page.Count) {
		link := pageURL(r, page.Request.Page+1)
		info.Links.Next = &link
	}
	if page.Request.HasPrevious() {
		link := pageURL(r, page.Request.Page-1)
		info.Links.Previous = &link
	}
	return info
}

func pageURL(r *http.Request, page int) string {
	u := *r.URL
	query := u.Query()
	if page <= 1 {
		query.Del("page")
	} else {
		query.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = query.Encode()
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + u.RequestURI()
}

const dateLayout = "2006-01-02"

func jobOfferFilter(r *http.Request) (joboffer.Filter, error) {
	query := r.URL.Query()
	fields := map[string]string{}
	filter := joboffer.Filter{
		Title:        strings.TrimSpace(query.Get("title")),
		Location:     strings.TrimSpace(query.Get("location")),
		Requirements: strings.TrimSpace(query.Get("requirements")),
		Company:      strings.TrimSpace(query.Get("company")),
	}
	if raw := strings.TrimSpace(query.Get("work_mode")); raw != "" {
		mode := joboffer.WorkMode(strings.ToLower(raw))
		if !mode.Valid() {
			fields["work_mode"] = fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", raw)
		} else {
			filter.WorkMode = mode
		}
	}
	if raw := strings.TrimSpace(query.Get("is_closed")); raw != "" {
		closed, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			fields["is_closed"] = "Enter a valid boolean."
		} else {
			filter.IsClosed = &closed
		}
	}
	filter.MinSalary = parseSalary(query.Get("min_salary"), "min_salary", fields)
	filter.MaxSalary = parseSalary(query.Get("max_salary"), "max_salary", fields)
	if filter.MinSalary != nil && filter.MaxSalary != nil && *filter.MinSalary > *filter.MaxSalary {
		fields["max_salary"] = "Ensure this value is greater than or equal to min_salary."
	}
	filter.CreatedOn = parseDate(query.Get("created_at"), "created_at", fields)
	filter.UpdatedOn = parseDate(query.Get("updated_at"), "updated_at", fields)
	if len(fields) > 0 {
		return joboffer.Filter{}, common.NewValidationError("Validation error", fields)
	}
	return filter, nil
}

func parseSalary(raw, field string, fields map[string]string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		fields[field] = "Enter a valid number."
		return nil
	}
	return &value
}

func parseDate(raw, field string, fields map[string]string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	value, err := time.Parse(dateLayout, raw)
	if err != nil {
		fields[field] = "Enter a valid date."
		return nil
	}
	return &value
}
