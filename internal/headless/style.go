package headless

import "strings"

type declaration struct {
	prop, value string
}

func parseStyle(style string) []declaration {
	var out []declaration
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}

func formatStyle(decls []declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value+";")
	}
	return strings.Join(parts, " ")
}

func withDisplay(style, display string) string {
	decls := parseStyle(style)
	for i := range decls {
		if decls[i].prop == "display" {
			decls[i].value = display
			return formatStyle(decls)
		}
	}
	return formatStyle(append(decls, declaration{prop: "display", value: display}))
}

func displayNone(style string) bool {
	for _, d := range parseStyle(style) {
		if d.prop == "display" && strings.EqualFold(d.value, "none") {
			return true
		}
	}
	return false
}
