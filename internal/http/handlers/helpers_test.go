package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"jobboard/internal/common"
	"jobboard/internal/domain/joboffer"
)

func TestPageRequest(t *testing.T) {
	cases := []struct {
		query    string
		page     int
		size     int
		notFound bool
	}{
		{"", 1, common.DefaultPageSize, false},
		{"page=3&page_size=5", 3, 5, false},
		{"page_size=500", 1, common.MaxPageSize, false},
		{"page_size=abc", 1, common.DefaultPageSize, false},
		{"page=0", 0, 0, true},
		{"page=last", 0, 0, true},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/job-offer/get-all?"+tc.query, nil)
		got, err := pageRequest(req)
		if tc.notFound {
			if !common.Is(err, common.CodeNotFound) {
				t.Fatalf("%q: expected not found, got %v", tc.query, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tc.query, err)
		}
		if got.Page != tc.page || got.PageSize != tc.size {
			t.Fatalf("%q: expected %d/%d, got %d/%d", tc.query, tc.page, tc.size, got.Page, got.PageSize)
		}
	}
}

func TestNewPageInfoLinks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://api.example.com/api/job-offer/filter?title=go&page=2&page_size=2", nil)
	page := &common.Page[joboffer.JobOffer]{Count: 5, Request: common.NewPageRequest(2, 2)}

	info := newPageInfo(req, page)
	if info.Count != 5 || info.Page != 2 || info.PageSize != 2 {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.Links.Next == nil || *info.Links.Next != "http://api.example.com/api/job-offer/filter?page=3&page_size=2&title=go" {
		t.Fatalf("unexpected next link %v", info.Links.Next)
	}
	if info.Links.Previous == nil || *info.Links.Previous != "http://api.example.com/api/job-offer/filter?page_size=2&title=go" {
		t.Fatalf("unexpected previous link %v", info.Links.Previous)
	}

	last := newPageInfo(req, &common.Page[joboffer.JobOffer]{Count: 5, Request: common.NewPageRequest(3, 2)})
	if last.Links.Next != nil {
		t.Fatalf("expected no next link on the last page, got %q", *last.Links.Next)
	}
}

func TestJobOfferFilterParsesValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/job-offer/filter?title=+Go+&work_mode=Remote&is_closed=false&min_salary=100&max_salary=200.5&created_at=2024-05-01", nil)
	filter, err := jobOfferFilter(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.Title != "Go" || filter.WorkMode != joboffer.WorkModeRemote {
		t.Fatalf("unexpected filter %+v", filter)
	}
	if filter.IsClosed == nil || *filter.IsClosed {
		t.Fatal("expected is_closed=false")
	}
	if filter.MinSalary == nil || *filter.MinSalary != 100 || filter.MaxSalary == nil || *filter.MaxSalary != 200.5 {
		t.Fatal("unexpected salary range")
	}
	if filter.CreatedOn == nil || filter.CreatedOn.Format(dateLayout) != "2024-05-01" {
		t.Fatal("unexpected created_at")
	}
	if filter.UpdatedOn != nil {
		t.Fatal("expected no updated_at filter")
	}
}

func TestJobOfferFilterRejectsInvalidValues(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/job-offer/filter?work_mode=moon&is_closed=maybe&min_salary=-1&max_salary=NaN&updated_at=01-05-2024", nil)
	_, err := jobOfferFilter(req)
	appErr, ok := common.As(err)
	if !ok || appErr.Code != common.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, field := range []string{"work_mode", "is_closed", "min_salary", "max_salary", "updated_at"} {
		if _, ok := appErr.Fields[field]; !ok {
			t.Fatalf("expected field error for %s, got %+v", field, appErr.Fields)
		}
	}
}

func TestJobOfferFilterRejectsInvertedSalaryRange(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/job-offer/filter?min_salary=500&max_salary=100", nil)
	_, err := jobOfferFilter(req)
	appErr, ok := common.As(err)
	if !ok || appErr.Fields["max_salary"] == "" {
		t.Fatalf("expected max_salary error, got %v", err)
	}
}

func TestIDFromPath(t *testing.T) {
	id := common.NewUUID()
	req := httptest.NewRequest(http.MethodGet, "/api/job-offer/get/"+id.String(), nil)
	got, err := idFromPath(req, pathIDIndex)
	if err != nil || got != id {
		t.Fatalf("expected %s, got %s (%v)", id, got, err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/job-offer/get/not-a-uuid", nil)
	_, err = idFromPath(req, pathIDIndex)
	appErr, ok := common.As(err)
	if !ok || appErr.Code != common.CodeValidation || appErr.Message != `"not-a-uuid" is not a valid UUID.` {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestDecodeJSON(t *testing.T) {
	var dst map[string]string
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":"b"}`))
	if err := decodeJSON(req, &dst); err != nil || dst["a"] != "b" {
		t.Fatalf("unexpected result %v %v", dst, err)
	}

	for _, body := range []string{"", "{broken"} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		if err := decodeJSON(req, &dst); !common.Is(err, common.CodeValidation) {
			t.Fatalf("%q: expected validation error, got %v", body, err)
		}
	}
}
