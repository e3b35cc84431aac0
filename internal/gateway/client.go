package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"go-pos-client/internal/models"
)

// Client talks to the remote API gateway. Every method returns a normalized
// envelope instead of an error: transport failures, non-2xx statuses and
// malformed bodies all come back as a failed Result/Page so a view never has
// to recover from a panic mid-render.
type Client struct {
	baseURL string
	httpc   *http.Client
	userID  func() int // active session user id, 0 when logged out
}

func New(baseURL string, userID func() int) *Client {
	if userID == nil {
		userID = func() int { return 0 }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		userID:  userID,
	}
}

// Params are the form/query fields of one request. Values are already strings
// because the backend is form-encoded everywhere.
type Params map[string]string

// File is an uploaded blob attached to a multipart POST.
type File struct {
	Field    string
	Name     string
	Contents []byte
}

// Result is the uniform mutation envelope: {success, message, data?}.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Page is the uniform listing envelope: rows plus the backend paginator block.
type Page[T any] struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message"`
	Data       []T               `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// request is the single transport core. POST sends multipart form fields,
// PUT sends an x-www-form-urlencoded body, GET and DELETE send query params.
// The session user id rides along on every call when someone is logged in.
func (c *Client) request(ctx context.Context, method, endpoint string, params Params, files ...File) (map[string]any, error) {
	if c.baseURL == "" {
		return nil, errors.New("API base URL is not configured")
	}

	merged := Params{}
	for k, v := range params {
		merged[k] = v
	}
	if id := c.userID(); id > 0 {
		merged["user_id"] = strconv.Itoa(id)
	}

	var req *http.Request
	var err error
	target := c.baseURL + "/" + endpoint

	switch method {
	case http.MethodPost:
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		for k, v := range merged {
			if err := writer.WriteField(k, v); err != nil {
				return nil, err
			}
		}
		for _, f := range files {
			part, err := writer.CreateFormFile(f.Field, f.Name)
			if err != nil {
				return nil, err
			}
			if _, err := part.Write(f.Contents); err != nil {
				return nil, err
			}
		}
		if err := writer.Close(); err != nil {
			return nil, err
		}
		req, err = http.NewRequestWithContext(ctx, method, target, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", writer.FormDataContentType())

	case http.MethodPut:
		form := url.Values{}
		for k, v := range merged {
			form.Set(k, v)
		}
		req, err = http.NewRequestWithContext(ctx, method, target, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	default: // GET, DELETE
		query := url.Values{}
		for k, v := range merged {
			query.Set(k, v)
		}
		full := target
		if len(query) > 0 {
			full += "?" + query.Encode()
		}
		req, err = http.NewRequestWithContext(ctx, method, full, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Prefer the server-provided message when the error body is parseable.
		var body map[string]any
		if json.Unmarshal(raw, &body) == nil {
			if msg := cast.ToString(body["message"]); msg != "" {
				return nil, errors.New(msg)
			}
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var body map[string]any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, errors.New("unexpected response format from server")
	}
	return body, nil
}

// failure builds the error Result for a request that never produced an envelope.
func failure(err error, fallback string) Result {
	msg := fallback
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Result{Success: false, Message: msg}
}

// resultFrom normalizes a {success, message, data?} body.
// Anything missing the success field is treated as a failure, not thrown.
func resultFrom(body map[string]any, err error, fallback string) Result {
	if err != nil {
		return failure(err, fallback)
	}
	if _, ok := body["success"]; !ok {
		return Result{Success: false, Message: "Unexpected response format from server"}
	}
	return Result{
		Success: cast.ToBool(body["success"]),
		Message: cast.ToString(body["message"]),
		Data:    body["data"],
	}
}

// legacyFrom normalizes the older {result, msg} envelope of the .php endpoints.
func legacyFrom(body map[string]any, err error, fallback string) Result {
	if err != nil {
		return failure(err, fallback)
	}
	if _, ok := body["result"]; !ok {
		return Result{Success: false, Message: "Unexpected response format from server"}
	}
	msg := cast.ToString(body["msg"])
	if msg == "" {
		msg = cast.ToString(body["message"])
	}
	return Result{
		Success: cast.ToBool(body["result"]),
		Message: msg,
		Data:    body["data"],
	}
}

// emptyPage is what every listing failure collapses to: zero rows, page 1.
func emptyPage[T any](msg string) Page[T] {
	return Page[T]{
		Success: false,
		Message: msg,
		Data:    []T{},
		Pagination: models.Pagination{
			CurrentPage: 1,
			PerPage:     10,
			LastPage:    1,
		},
	}
}

// pageFrom maps a listing body into typed rows. Rows the mapper rejects
// (missing or non-positive id) are dropped rather than failing the page.
func pageFrom[T any](body map[string]any, err error, fallback string, mapRow func(map[string]any) (T, bool)) Page[T] {
	if err != nil {
		return emptyPage[T](failure(err, fallback).Message)
	}
	if !cast.ToBool(body["success"]) {
		msg := cast.ToString(body["message"])
		if msg == "" {
			msg = fallback
		}
		return emptyPage[T](msg)
	}

	items, ok := body["data"].([]any)
	if !ok {
		return emptyPage[T](fallback)
	}

	rows := make([]T, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		row, ok := mapRow(fields)
		if !ok {
			continue
		}
		rows = append(rows, row)
	}

	page := Page[T]{
		Success:    true,
		Message:    cast.ToString(body["message"]),
		Data:       rows,
		Pagination: paginationFrom(body["pagination"], len(rows)),
	}
	return page
}

// paginationFrom parses the paginator block, synthesizing a single-page one
// for endpoints that return a flat unpaginated list.
func paginationFrom(v any, count int) models.Pagination {
	fields, ok := v.(map[string]any)
	if !ok {
		p := models.Pagination{
			CurrentPage: 1,
			PerPage:     10,
			Total:       count,
			LastPage:    1,
		}
		if count > 0 {
			from := 1
			to := count
			p.From = &from
			p.To = &to
		}
		return p
	}

	p := models.Pagination{
		CurrentPage:      cast.ToInt(fields["current_page"]),
		PerPage:          cast.ToInt(fields["per_page"]),
		Total:            cast.ToInt(fields["total"]),
		LastPage:         cast.ToInt(fields["last_page"]),
		HasMorePages:     cast.ToBool(fields["has_more_pages"]),
		HasPreviousPages: cast.ToBool(fields["has_previous_pages"]),
	}
	if fields["from"] != nil {
		from := cast.ToInt(fields["from"])
		p.From = &from
	}
	if fields["to"] != nil {
		to := cast.ToInt(fields["to"])
		p.To = &to
	}
	if s := cast.ToString(fields["next_page_url"]); s != "" {
		p.NextPageURL = &s
	}
	if s := cast.ToString(fields["previous_page_url"]); s != "" {
		p.PreviousPageURL = &s
	}
	return p
}

// ListQuery carries the pagination and sorting fields shared by every
// list/search endpoint.
type ListQuery struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc or desc
	Paginate  bool
}

func (q ListQuery) params() Params {
	p := Params{"paginate": strconv.FormatBool(q.Paginate)}
	if q.Page > 0 {
		p["page"] = strconv.Itoa(q.Page)
	}
	if q.PerPage > 0 {
		p["per_page"] = strconv.Itoa(q.PerPage)
	}
	if q.SortBy != "" {
		p["sort_by"] = q.SortBy
	}
	if q.SortOrder != "" {
		p["sort_order"] = q.SortOrder
	}
	return p
}
