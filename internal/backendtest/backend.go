// Package backendtest runs an in-memory implementation of the blog REST API
// for tests. It follows the backend contract: session cookie auth,
// {error: "..."} bodies on failure, and 201/200 mutation responses with the
// resulting slug.
package backendtest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Credentials accepted by /api/login.
const (
	Username = "admin"
	Password = "secret"
)

const sessionCookie = "session"

// Page mirrors the backend row.
type Page struct {
	Title         string `json:"title"`
	Slug          string `json:"slug"`
	Content       string `json:"content"`
	IsBlog        bool   `json:"is_blog"`
	Excerpt       string `json:"excerpt"`
	Featured      bool   `json:"featured"`
	PublishedDate string `json:"published_date"`
	UpdatedAt     string `json:"updated_at"`
}

// Request is a recorded API call.
type Request struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header
}

type failure struct {
	status  int
	message string
}

// Backend is the fake API server.
type Backend struct {
	*httptest.Server

	mu       sync.Mutex
	pages    map[string]*Page
	intro    string
	sessions map[string]bool
	requests []Request
	failures map[string]failure
	delay    map[string]time.Duration
	clock    int
}

var slugRe = regexp.MustCompile(`[^a-z0-9]+`)

// New starts a backend and closes it when the test ends.
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		pages:    make(map[string]*Page),
		intro:    "Welcome to the blog",
		sessions: make(map[string]bool),
		failures: make(map[string]failure),
		delay:    make(map[string]time.Duration),
	}
	b.Server = httptest.NewServer(b.routes())
	t.Cleanup(b.Close)
	return b
}

func (b *Backend) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(b.record)
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", b.login)
		r.Post("/logout", b.logout)
		r.Get("/check-auth", b.checkAuth)
		r.Get("/content", b.content)
		r.With(b.requireAuth).Put("/content/intro", b.updateIntro)
		r.Get("/pages", b.listPages)
		r.Get("/pages/{slug}", b.getPage)
		r.With(b.requireAuth).Post("/pages", b.createPage)
		r.With(b.requireAuth).Put("/pages/{slug}", b.updatePage)
		r.With(b.requireAuth).Delete("/pages/{slug}", b.deletePage)
		r.Get("/posts", b.listPosts)
		r.With(b.requireAuth).Post("/upload-image", b.uploadImage)
	})
	return r
}

// URL of the API root, e.g. "http://127.0.0.1:1234".
func (b *Backend) URL() string { return b.Server.URL }

// AddPage stores p, filling dates when empty.
func (b *Backend) AddPage(p Page) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stamp(&p)
	b.pages[p.Slug] = &p
}

// Page returns a copy of the stored page.
func (b *Backend) Page(slug string) (Page, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.pages[slug]
	if !ok {
		return Page{}, false
	}
	return *p, true
}

// Intro returns the site introduction.
func (b *Backend) Intro() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.intro
}

// Fail makes every "METHOD /api/path" call answer with status and message
// until cleared with status 0.
func (b *Backend) Fail(method, path string, status int, message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	key := method + " " + path
	if status == 0 {
		delete(b.failures, key)
		return
	}
	b.failures[key] = failure{status: status, message: message}
}

// Delay holds "METHOD /api/path" calls for d before answering.
func (b *Backend) Delay(method, path string, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.delay[method+" "+path] = d
}

// Requests returns the recorded calls.
func (b *Backend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Calls counts recorded calls to "METHOD /api/path".
func (b *Backend) Calls(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// LastBody decodes the body of the last call to "METHOD /api/path" into a map.
func (b *Backend) LastBody(method, path string) map[string]any {
	reqs := b.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			var m map[string]any
			_ = json.Unmarshal(reqs[i].Body, &m)
			return m
		}
	}
	return nil
}

func (b *Backend) stamp(p *Page) {
	b.clock++
	ts := fmt.Sprintf("2024-01-%02d 10:00:00", b.clock%28+1)
	if p.PublishedDate == "" {
		p.PublishedDate = ts
	}
	if p.UpdatedAt == "" {
		p.UpdatedAt = ts
	}
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil && !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(strings.NewReader(string(body)))
		}

		b.mu.Lock()
		b.requests = append(b.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Body:   body,
			Header: r.Header.Clone(),
		})
		key := r.Method + " " + r.URL.Path
		f, failing := b.failures[key]
		d := b.delay[key]
		b.mu.Unlock()

		if d > 0 {
			select {
			case <-time.After(d):
			case <-r.Context().Done():
				return
			}
		}
		if failing {
			writeError(w, f.status, f.message)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) authenticated(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[c.Value]
}

func (b *Backend) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !b.authenticated(r) {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		w.WriteHeader(status)
		return
	}
	writeJSON(w, status, map[string]string{"error": message})
}

func (b *Backend) login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	if creds.Username != Username || creds.Password != Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token := uuid.NewString()
	b.mu.Lock()
	b.sessions[token] = true
	b.mu.Unlock()

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: token, Path: "/", HttpOnly: true})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Login successful"})
}

func (b *Backend) logout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		b.mu.Lock()
		delete(b.sessions, c.Value)
		b.mu.Unlock()
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Logged out successfully"})
}

func (b *Backend) checkAuth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"authenticated": b.authenticated(r)})
}

func (b *Backend) content(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"introduction": b.Intro()})
}

func (b *Backend) updateIntro(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content *string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	b.mu.Lock()
	b.intro = *body.Content
	b.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Introduction updated"})
}

func (b *Backend) sorted(filter func(*Page) bool, less func(a, b *Page) bool) []Page {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]*Page, 0, len(b.pages))
	for _, p := range b.pages {
		if filter(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	res := make([]Page, len(out))
	for i, p := range out {
		res[i] = *p
	}
	return res
}

func (b *Backend) listPages(w http.ResponseWriter, r *http.Request) {
	pages := b.sorted(
		func(*Page) bool { return true },
		func(x, y *Page) bool { return x.Title < y.Title },
	)
	writeJSON(w, http.StatusOK, pages)
}

func (b *Backend) listPosts(w http.ResponseWriter, r *http.Request) {
	featured := r.URL.Query().Get("featured") == "true"
	posts := b.sorted(
		func(p *Page) bool { return p.IsBlog && (!featured || p.Featured) },
		func(x, y *Page) bool { return x.PublishedDate > y.PublishedDate },
	)
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	writeJSON(w, http.StatusOK, posts)
}

func (b *Backend) getPage(w http.ResponseWriter, r *http.Request) {
	p, ok := b.Page(chi.URLParam(r, "slug"))
	if !ok {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type pageInput struct {
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Content  string `json:"content"`
	IsBlog   bool   `json:"is_blog"`
	Excerpt  string `json:"excerpt"`
	Featured bool   `json:"featured"`
}

func slugify(s string) string {
	return strings.Trim(slugRe.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

func (b *Backend) createPage(w http.ResponseWriter, r *http.Request) {
	var in pageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusBadRequest, "Title is required")
		return
	}
	slug := in.Slug
	if slug == "" {
		slug = slugify(in.Title)
	}
	if _, exists := b.Page(slug); exists {
		writeError(w, http.StatusBadRequest, "A page with this slug already exists")
		return
	}
	b.AddPage(Page{
		Title: in.Title, Slug: slug, Content: in.Content,
		IsBlog: in.IsBlog, Excerpt: in.Excerpt, Featured: in.Featured,
	})
	writeJSON(w, http.StatusCreated, map[string]any{"success": true, "message": "Page created", "slug": slug})
}

func (b *Backend) updatePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	var in pageInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "No data provided")
		return
	}

	b.mu.Lock()
	p, ok := b.pages[slug]
	if ok {
		p.Title, p.Content, p.IsBlog, p.Featured = in.Title, in.Content, in.IsBlog, in.Featured
		if in.Excerpt != "" {
			p.Excerpt = in.Excerpt
		}
		p.UpdatedAt = ""
		b.stamp(p)
	}
	b.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Page updated", "slug": slug})
}

func (b *Backend) deletePage(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	b.mu.Lock()
	_, ok := b.pages[slug]
	delete(b.pages, slug)
	b.mu.Unlock()

	if !ok {
		writeError(w, http.StatusNotFound, "Page not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Page deleted"})
}

func (b *Backend) uploadImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()
	if header.Filename == "" {
		writeError(w, http.StatusBadRequest, "No selected file")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": "/static/uploads/" + header.Filename})
}
