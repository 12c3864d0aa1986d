package api

// Page is a CMS page or blog post as stored by the backend.
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

// PageInput is the body of create and update calls. An empty Slug lets the
// backend derive one from the title; an empty Excerpt is not sent.
type PageInput struct {
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`
	Content  string `json:"content"`
	IsBlog   bool   `json:"is_blog"`
	Excerpt  string `json:"excerpt,omitempty"`
	Featured bool   `json:"featured"`
}

// SiteContent holds the editable site-wide texts.
type SiteContent struct {
	Introduction string `json:"introduction"`
}

// AuthStatus is the answer of /check-auth.
type AuthStatus struct {
	Authenticated bool `json:"authenticated"`
}

// MutationResult is the answer of write calls.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Slug    string `json:"slug,omitempty"`
}

// PostsQuery filters GetBlogPosts. Zero values mean no filter.
type PostsQuery struct {
	Featured bool
	Limit    int
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type introUpdate struct {
	Content string `json:"content"`
}

type uploadResult struct {
	URL string `json:"url"`
}

type errorBody struct {
	Error string `json:"error"`
}
