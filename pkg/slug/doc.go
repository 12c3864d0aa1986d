// Package slug turns titles and file names into page slugs.
//
// A slug contains only ASCII letters, digits and single hyphens, which is
// exactly what the client routes accept:
//
//	slug.Make("Café & Crème!")            // "cafe-creme"
//	slug.Make("Notes", slug.MaxLength(3)) // "not"
//
// Accented letters are folded to their base letter; everything else becomes
// a separator.
package slug
