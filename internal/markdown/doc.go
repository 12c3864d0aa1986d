// Package markdown turns Markdown files with optional front matter into
// page input for the blog API.
//
// Recognised front matter keys: title, slug, is_blog, featured and excerpt
// (Markdown). A missing title is derived from the file name.
package markdown
