// Package sanitizer turns stored HTML content into display-safe text.
//
// PlainText extracts the text a browser would report as textContent,
// skipping script and style elements. Excerpt shortens that text for post
// listings, cutting at the last space before the limit and appending "...".
package sanitizer
