package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/neuralwired/pkg/broadcast"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// RequestIDHeader carries the per-request identifier.
const RequestIDHeader = "X-Request-ID"

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	prefix  string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger

	auth broadcast.Registry[bool]
}

// New creates a client for the backend at baseURL (scheme and host, e.g.
// "http://localhost:5000"). Endpoints are resolved under "/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		prefix:  "/api",
		timeout: defaultTimeout,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		jar, _ := cookiejar.New(nil) // never fails without options
		c.http = &http.Client{Jar: jar}
	}
	return c
}

// OnAuthStateChanged registers fn for authentication changes and returns a
// function that unregisters it.
func (c *Client) OnAuthStateChanged(fn func(authenticated bool)) (remove func()) {
	return c.auth.Add(fn)
}

func (c *Client) emitAuth(authenticated bool) {
	if err := c.auth.Emit(authenticated); err != nil {
		c.log.Error("auth listener failed", logger.Event("authStateChanged"), logger.Error(err))
	}
}

func (c *Client) url(endpoint string) string {
	return c.baseURL + c.prefix + endpoint
}

// Request sends a JSON request and returns the raw response body.
// A 204 response yields a nil body. payload may be nil.
func (c *Client) Request(ctx context.Context, method, endpoint string, payload any) (json.RawMessage, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, endpoint, body, "application/json", "")
}

func (c *Client) do(ctx context.Context, method, endpoint string, body io.Reader, contentType, fallback string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, c.url(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, endpoint, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)

	attrs := []any{logger.Method(method), logger.Endpoint(endpoint), logger.RequestID(reqID)}
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			c.log.WarnContext(ctx, "api request failed", append(attrs, logger.Error(err))...)
		}
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s: %w", ErrTransport, method, endpoint, err)
	}
	attrs = append(attrs, logger.Status(resp.StatusCode), logger.Duration(time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		apiErr := statusError(resp.StatusCode, eb.Error, fallback)
		c.log.WarnContext(ctx, "api error response", append(attrs, logger.Error(apiErr))...)
		return nil, apiErr
	}

	c.log.DebugContext(ctx, "api request", attrs...)

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: %s %s", ErrInvalidResponse, method, endpoint)
	}
	return json.RawMessage(raw), nil
}

// call performs Request and decodes the body into T.
func call[T any](ctx context.Context, c *Client, method, endpoint string, payload any) (T, error) {
	var out T
	raw, err := c.Request(ctx, method, endpoint, payload)
	if err != nil || raw == nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%w: %s %s: %w", ErrInvalidResponse, method, endpoint, err)
	}
	return out, nil
}

// Login opens a session and notifies auth listeners with true.
func (c *Client) Login(ctx context.Context, username, password string) (MutationResult, error) {
	res, err := call[MutationResult](ctx, c, http.MethodPost, "/login", credentials{Username: username, Password: password})
	if err != nil {
		return res, err
	}
	c.emitAuth(true)
	return res, nil
}

// Logout closes the session and notifies auth listeners with false.
func (c *Client) Logout(ctx context.Context) (MutationResult, error) {
	res, err := call[MutationResult](ctx, c, http.MethodPost, "/logout", nil)
	if err != nil {
		return res, err
	}
	c.emitAuth(false)
	return res, nil
}

// CheckAuth asks the backend whether the session is valid and notifies auth
// listeners with the answer. Failures count as unauthenticated.
func (c *Client) CheckAuth(ctx context.Context) AuthStatus {
	status, err := call[AuthStatus](ctx, c, http.MethodGet, "/check-auth", nil)
	if err != nil {
		c.log.WarnContext(ctx, "auth check failed", logger.Error(err))
		status = AuthStatus{}
	}
	c.emitAuth(status.Authenticated)
	return status
}

// GetSiteContent returns the site-wide texts.
func (c *Client) GetSiteContent(ctx context.Context) (SiteContent, error) {
	return call[SiteContent](ctx, c, http.MethodGet, "/content", nil)
}

// UpdateIntroduction replaces the home page introduction.
func (c *Client) UpdateIntroduction(ctx context.Context, content string) (MutationResult, error) {
	return call[MutationResult](ctx, c, http.MethodPut, "/content/intro", introUpdate{Content: content})
}

// GetAllPages lists every page, blog posts included.
func (c *Client) GetAllPages(ctx context.Context) ([]Page, error) {
	return call[[]Page](ctx, c, http.MethodGet, "/pages", nil)
}

// GetPageBySlug returns one page. A missing page is an *Error with status 404.
func (c *Client) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	return call[Page](ctx, c, http.MethodGet, "/pages/"+url.PathEscape(slug), nil)
}

// CreatePage stores a new page. The result carries the final slug.
func (c *Client) CreatePage(ctx context.Context, in PageInput) (MutationResult, error) {
	return call[MutationResult](ctx, c, http.MethodPost, "/pages", in)
}

// UpdatePage overwrites the page stored under slug.
func (c *Client) UpdatePage(ctx context.Context, slug string, in PageInput) (MutationResult, error) {
	return call[MutationResult](ctx, c, http.MethodPut, "/pages/"+url.PathEscape(slug), in)
}

// DeletePage removes the page stored under slug.
func (c *Client) DeletePage(ctx context.Context, slug string) (MutationResult, error) {
	return call[MutationResult](ctx, c, http.MethodDelete, "/pages/"+url.PathEscape(slug), nil)
}

// GetBlogPosts lists blog posts, newest first.
func (c *Client) GetBlogPosts(ctx context.Context, q PostsQuery) ([]Page, error) {
	params := url.Values{}
	if q.Featured {
		params.Set("featured", "true")
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	endpoint := "/posts"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}
	return call[[]Page](ctx, c, http.MethodGet, endpoint, nil)
}

// UploadImage sends an image as multipart field "image" and returns its
// public URL.
func (c *Client) UploadImage(ctx context.Context, name string, r io.Reader) (string, error) {
	if name == "" || r == nil {
		return "", ErrEmptyFile
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", name)
	if err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("encode upload: %w", err)
	}

	raw, err := c.do(ctx, http.MethodPost, "/upload-image", &buf, mw.FormDataContentType(), "Image upload failed")
	if err != nil {
		return "", err
	}
	var res uploadResult
	if err := json.Unmarshal(raw, &res); err != nil || res.URL == "" {
		return "", fmt.Errorf("%w: upload response", ErrInvalidResponse)
	}
	return res.URL, nil
}
