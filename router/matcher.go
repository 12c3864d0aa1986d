package router

import "regexp"

// Params holds the named groups captured by a pattern route.
type Params map[string]string

// Matcher decides whether a route applies to a path.
type Matcher interface {
	Match(path string) (Params, bool)
	String() string
}

type exact string

// Exact matches the path by string equality.
func Exact(path string) Matcher {
	return exact(path)
}

func (e exact) Match(path string) (Params, bool) {
	if string(e) != path {
		return nil, false
	}
	return Params{}, true
}

func (e exact) String() string { return string(e) }

type pattern struct {
	expr string
	re   *regexp.Regexp
}

// Pattern matches the whole path against expr. Named groups, written
// (?<name>...) or (?P<name>...), are returned as params. It panics if expr
// does not compile.
func Pattern(expr string) Matcher {
	return &pattern{expr: expr, re: regexp.MustCompile(`^(?:` + expr + `)$`)}
}

func (p *pattern) Match(path string) (Params, bool) {
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	params := Params{}
	for i, name := range p.re.SubexpNames() {
		if i > 0 && name != "" {
			params[name] = m[i]
		}
	}
	return params, true
}

func (p *pattern) String() string { return p.expr }
