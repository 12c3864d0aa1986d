package component

import "github.com/dmitrymomot/neuralwired/dom"

// Theme names and the local storage key they persist under.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeKey   = "theme"
)

// ApplyTheme sets data-theme on the root element from local storage,
// falling back to def (or light).
func ApplyTheme(doc dom.Document, def string) string {
	theme, ok := doc.LocalStorage().Get(ThemeKey)
	if !ok || (theme != ThemeLight && theme != ThemeDark) {
		theme = ThemeLight
		if def == ThemeDark {
			theme = ThemeDark
		}
	}
	doc.Root().SetAttr("data-theme", theme)
	return theme
}

// ToggleTheme flips between light and dark and persists the choice.
func ToggleTheme(doc dom.Document) string {
	theme := ThemeDark
	if current, _ := doc.Root().Attr("data-theme"); current == ThemeDark {
		theme = ThemeLight
	}
	doc.Root().SetAttr("data-theme", theme)
	doc.LocalStorage().Set(ThemeKey, theme)
	return theme
}
