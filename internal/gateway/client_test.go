package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestClient(handler http.HandlerFunc, userID int) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	c := New(srv.URL, func() int { return userID })
	return c, srv
}

func TestListCustomersParsesEnvelope(t *testing.T) {
	var gotQuery map[string]string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"message": "ok",
			"data": [
				{"id": "1", "first_name": "Jane", "last_name": "Doe", "email": "jane@example.com", "contact_no": "0711111111", "address": "Colombo"},
				{"id": "0", "first_name": "dropped"},
				{"id": "2", "first_name": "John", "last_name": "Smith"}
			],
			"pagination": {"current_page": 2, "per_page": 10, "total": 25, "last_page": 3, "from": 11, "to": 20, "has_more_pages": true}
		}`))
	}, 5)
	defer srv.Close()

	page := c.ListCustomers(context.Background(), ListQuery{Page: 2, PerPage: 10, Paginate: true})

	if !page.Success {
		t.Fatalf("page failed: %s", page.Message)
	}
	if len(page.Data) != 2 {
		t.Fatalf("rows = %d, want 2 (the id 0 row must be dropped)", len(page.Data))
	}
	if page.Data[0].ClientFirstName != "Jane" || page.Data[0].ClientID != 1 {
		t.Fatalf("first row = %+v", page.Data[0])
	}
	if page.Pagination.CurrentPage != 2 || page.Pagination.Total != 25 || !page.Pagination.HasMorePages {
		t.Fatalf("pagination = %+v", page.Pagination)
	}

	if gotQuery["page"] != "2" || gotQuery["per_page"] != "10" || gotQuery["paginate"] != "true" {
		t.Fatalf("query = %v", gotQuery)
	}
	if gotQuery["user_id"] != "5" {
		t.Fatalf("user_id = %q, want 5", gotQuery["user_id"])
	}
}

func TestMalformedBodyCollapsesToEmptyPage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>not json</html>"))
	}, 0)
	defer srv.Close()

	page := c.ListCustomers(context.Background(), ListQuery{Paginate: true})
	if page.Success {
		t.Fatal("malformed body must not report success")
	}
	if len(page.Data) != 0 {
		t.Fatalf("rows = %d, want 0", len(page.Data))
	}
	if page.Message != "unexpected response format from server" {
		t.Fatalf("message = %q", page.Message)
	}
	if page.Pagination.CurrentPage != 1 {
		t.Fatalf("pagination should reset to page 1, got %+v", page.Pagination)
	}
}

func TestServerErrorMessageSurvives(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message": "Email already taken"}`))
	}, 1)
	defer srv.Close()

	res := c.CreateCustomer(context.Background(), Params{"email": "dup@example.com"})
	if res.Success {
		t.Fatal("4xx must not report success")
	}
	if res.Message != "Email already taken" {
		t.Fatalf("message = %q, want the server's", res.Message)
	}
}

func TestServerErrorWithoutBodyUsesStatusText(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, 1)
	defer srv.Close()

	res := c.CreateCustomer(context.Background(), Params{})
	if res.Success {
		t.Fatal("5xx must not report success")
	}
	if res.Message != "HTTP 500: Internal Server Error" {
		t.Fatalf("message = %q", res.Message)
	}
}

func TestPostSendsMultipartWithUserID(t *testing.T) {
	var contentType, name, userID string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			name = r.FormValue("productBrandName")
			userID = r.FormValue("user_id")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "message": "created"}`))
	}, 9)
	defer srv.Close()

	res := c.CreateBrand(context.Background(), Params{"productBrandName": "Acme"})
	if !res.Success {
		t.Fatalf("create failed: %s", res.Message)
	}
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		t.Fatalf("POST content type = %q", contentType)
	}
	if name != "Acme" || userID != "9" {
		t.Fatalf("form fields = %q / user_id %q", name, userID)
	}
}

func TestPutSendsFormURLEncoded(t *testing.T) {
	var contentType, name string
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseForm(); err == nil {
			name = r.PostFormValue("productBrandName")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success": true, "message": "updated"}`))
	}, 9)
	defer srv.Close()

	res := c.UpdateBrand(context.Background(), 3, Params{"productBrandName": "Acme"})
	if !res.Success {
		t.Fatalf("update failed: %s", res.Message)
	}
	if contentType != "application/x-www-form-urlencoded" {
		t.Fatalf("PUT content type = %q", contentType)
	}
	if name != "Acme" {
		t.Fatalf("form field = %q", name)
	}
}

func TestLoginLegacyEnvelope(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": true, "msg": "welcome", "user": {"id": 4, "name": "Amy", "email": "amy@example.com", "role": "cashier"}}`))
	}, 0)
	defer srv.Close()

	user, err := c.Login(context.Background(), "amy@example.com", "secret")
	if err != nil {
		t.Fatal(err)
	}
	if user.ID != 4 || user.Role != "cashier" {
		t.Fatalf("user = %+v", user)
	}
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result": false, "msg": "Invalid credentials"}`))
	}, 0)
	defer srv.Close()

	if _, err := c.Login(context.Background(), "amy@example.com", "wrong"); err == nil || err.Error() != "Invalid credentials" {
		t.Fatalf("err = %v", err)
	}
}

func TestUnpaginatedListSynthesizesPagination(t *testing.T) {
	c, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"success": true,
			"data": [
				{"id": 1, "first_name": "A", "last_name": "B"},
				{"id": 2, "first_name": "C", "last_name": "D"}
			]
		}`))
	}, 0)
	defer srv.Close()

	page := c.ListCustomers(context.Background(), ListQuery{Paginate: false})
	if !page.Success || len(page.Data) != 2 {
		t.Fatalf("page = %+v", page)
	}
	p := page.Pagination
	if p.CurrentPage != 1 || p.LastPage != 1 || p.Total != 2 {
		t.Fatalf("synthesized pagination = %+v", p)
	}
	if p.From == nil || *p.From != 1 || p.To == nil || *p.To != 2 {
		t.Fatalf("from/to = %v/%v", p.From, p.To)
	}
}

func TestUnconfiguredBaseURLFailsFast(t *testing.T) {
	c := New("", nil)
	res := c.CreateCustomer(context.Background(), Params{})
	if res.Success {
		t.Fatal("missing base URL must fail")
	}
	if res.Message != "API base URL is not configured" {
		t.Fatalf("message = %q", res.Message)
	}
}
