// Package blogclient talks to the blog REST API and renders post listings
// for terminals.
package blogclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"

	"blog-server/dto"
	"blog-server/httpclient"
)

const maxErrorBody = 2048

type Client struct {
	base *httpclient.BaseClient
}

// New returns a client for the API at baseURL (e.g. http://localhost:5000).
// A nil httpClient uses the logging default.
func New(baseURL string, httpClient *http.Client) *Client {
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL)}
}

// ListParams mirrors the GET /api/posts query. Zero values are omitted so
// the server defaults apply. Status nil lists published posts only.
type ListParams struct {
	Page      int
	Limit     int
	Category  string
	Search    string
	Status    *string
	SortBy    string
	SortOrder string
}

func (p ListParams) query() url.Values {
	q := url.Values{}
	if p.Page != 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit != 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Category != "" {
		q.Set("category", p.Category)
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != nil {
		q.Set("status", *p.Status)
	}
	if p.SortBy != "" {
		q.Set("sortBy", p.SortBy)
	}
	if p.SortOrder != "" {
		q.Set("sortOrder", p.SortOrder)
	}
	return q
}

// PostPage is one page of a listing.
type PostPage struct {
	Items      []dto.PostDTO
	Pagination dto.Pagination
}

// envelope is the shape shared by every API response.
type envelope struct {
	Success    bool            `json:"success"`
	Message    string          `json:"message"`
	Errors     []string        `json:"errors"`
	Data       json.RawMessage `json:"data"`
	Pagination *dto.Pagination `json:"pagination"`
}

func (c *Client) ListPosts(ctx context.Context, p ListParams) (PostPage, error) {
	var items []dto.PostDTO
	env, err := c.call(ctx, http.MethodGet, "/api/posts", p.query(), nil, &items)
	if err != nil {
		return PostPage{}, err
	}
	page := PostPage{Items: items}
	if env.Pagination != nil {
		page.Pagination = *env.Pagination
	}
	return page, nil
}

// GetPost fetches one post. The server counts it as a view.
func (c *Client) GetPost(ctx context.Context, id string) (dto.PostDTO, error) {
	var out dto.PostDTO
	_, err := c.call(ctx, http.MethodGet, path.Join("/api/posts", url.PathEscape(id)), nil, nil, &out)
	return out, err
}

func (c *Client) CreatePost(ctx context.Context, in dto.PostPayload) (dto.PostDTO, error) {
	var out dto.PostDTO
	_, err := c.call(ctx, http.MethodPost, "/api/posts", nil, in, &out)
	return out, err
}

func (c *Client) UpdatePost(ctx context.Context, id string, in dto.PostPayload) (dto.PostDTO, error) {
	var out dto.PostDTO
	_, err := c.call(ctx, http.MethodPut, path.Join("/api/posts", url.PathEscape(id)), nil, in, &out)
	return out, err
}

func (c *Client) DeletePost(ctx context.Context, id string) error {
	_, err := c.call(ctx, http.MethodDelete, path.Join("/api/posts", url.PathEscape(id)), nil, nil, nil)
	return err
}

// PostActivity returns the recorded lifecycle events of a post, newest first.
// limit 0 leaves the page size to the server.
func (c *Client) PostActivity(ctx context.Context, id string, limit int) ([]dto.PostActivityDTO, error) {
	var query url.Values
	if limit != 0 {
		query = url.Values{"limit": {strconv.Itoa(limit)}}
	}
	var out []dto.PostActivityDTO
	_, err := c.call(ctx, http.MethodGet, path.Join("/api/posts", url.PathEscape(id), "activity"), query, nil, &out)
	return out, err
}

// ListPostCategories returns the categories used by published posts.
func (c *Client) ListPostCategories(ctx context.Context) ([]string, error) {
	var out []string
	_, err := c.call(ctx, http.MethodGet, "/api/posts/categories/list", nil, nil, &out)
	return out, err
}

func (c *Client) ListCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	var out []dto.CategoryDTO
	_, err := c.call(ctx, http.MethodGet, "/api/categories", nil, nil, &out)
	return out, err
}

func (c *Client) CreateCategory(ctx context.Context, in dto.CategoryPayload) (dto.CategoryDTO, error) {
	var out dto.CategoryDTO
	_, err := c.call(ctx, http.MethodPost, "/api/categories", nil, in, &out)
	return out, err
}

// Health returns nil when the server and its database are up.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.call(ctx, http.MethodGet, "/api/health", nil, nil, nil)
	return err
}

// call performs one request and decodes the envelope. data, when non-nil,
// receives the envelope's data field.
func (c *Client) call(ctx context.Context, method, relPath string, query url.Values, body any, data any) (envelope, error) {
	var rd io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return envelope{}, err
		}
		rd = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, method, relPath, query, rd)
	if err != nil {
		return envelope{}, err
	}
	req.Header.Set("Accept", "application/json")
	if rd != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return envelope{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return envelope{}, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return envelope{}, &APIError{Status: resp.StatusCode, Message: truncate(raw)}
		}
		return envelope{}, fmt.Errorf("decode %s %s: %w", method, relPath, err)
	}
	if resp.StatusCode >= http.StatusBadRequest || !env.Success {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return env, &APIError{Status: resp.StatusCode, Message: msg, Errors: env.Errors}
	}

	if data != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, data); err != nil {
			return env, fmt.Errorf("decode %s %s data: %w", method, relPath, err)
		}
	}
	return env, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		b = b[:maxErrorBody]
	}
	return string(bytes.TrimSpace(b))
}
