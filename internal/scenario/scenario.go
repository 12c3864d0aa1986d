package scenario

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/neuralwired/dom"
)

// DefaultRegion is inspected by expectations without a selector.
const DefaultRegion = "#" + dom.RegionContent

// Kind names a step action.
type Kind string

const (
	KindNavigate Kind = "navigate"
	KindClick    Kind = "click"
	KindFill     Kind = "fill"
	KindSubmit   Kind = "submit"
	KindBack     Kind = "back"
	KindExpect   Kind = "expect"
)

// Scenario is a parsed script.
type Scenario struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Step holds one action. Exactly one field is set.
type Step struct {
	Navigate string  `yaml:"navigate,omitempty"`
	Click    string  `yaml:"click,omitempty"`
	Fill     *Fill   `yaml:"fill,omitempty"`
	Submit   string  `yaml:"submit,omitempty"`
	Back     bool    `yaml:"back,omitempty"`
	Expect   *Expect `yaml:"expect,omitempty"`
}

// Fill sets the value of an input or the markup of an editable region.
type Fill struct {
	Selector string `yaml:"selector"`
	Value    string `yaml:"value"`
}

// Expect checks the document. Empty fields are not checked.
type Expect struct {
	// Path is the expected location path.
	Path string `yaml:"path,omitempty"`
	// Selector defaults to the content region.
	Selector string `yaml:"selector,omitempty"`
	// Contains must appear in the text of the selected element.
	Contains string `yaml:"contains,omitempty"`
	// Missing asserts that no element matches Selector.
	Missing bool `yaml:"missing,omitempty"`
}

// Kind returns the action of s, or "" when s names none or several.
func (s Step) Kind() Kind {
	var kinds []Kind
	if s.Navigate != "" {
		kinds = append(kinds, KindNavigate)
	}
	if s.Click != "" {
		kinds = append(kinds, KindClick)
	}
	if s.Fill != nil {
		kinds = append(kinds, KindFill)
	}
	if s.Submit != "" {
		kinds = append(kinds, KindSubmit)
	}
	if s.Back {
		kinds = append(kinds, KindBack)
	}
	if s.Expect != nil {
		kinds = append(kinds, KindExpect)
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Describe returns a one-line summary for logs and terminal output.
func (s Step) Describe() string {
	switch s.Kind() {
	case KindNavigate:
		return s.Navigate
	case KindClick:
		return s.Click
	case KindFill:
		return fmt.Sprintf("%s = %q", s.Fill.Selector, s.Fill.Value)
	case KindSubmit:
		return s.Submit
	case KindExpect:
		var parts []string
		if s.Expect.Path != "" {
			parts = append(parts, "path "+s.Expect.Path)
		}
		if s.Expect.Missing {
			parts = append(parts, "no "+s.Expect.Selector)
		} else if s.Expect.Contains != "" {
			parts = append(parts, fmt.Sprintf("%q in %s", s.Expect.Contains, s.Expect.selector()))
		}
		return strings.Join(parts, ", ")
	}
	return ""
}

func (e *Expect) selector() string {
	if e.Selector == "" {
		return DefaultRegion
	}
	return e.Selector
}

// Parse reads a scenario and validates its steps.
func Parse(r io.Reader) (Scenario, error) {
	var sc Scenario
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		if errors.Is(err, io.EOF) {
			return sc, ErrEmptyScenario
		}
		return sc, fmt.Errorf("scenario: parse: %w", err)
	}
	if len(sc.Steps) == 0 {
		return sc, ErrEmptyScenario
	}
	for i, s := range sc.Steps {
		if s.Kind() == "" {
			return sc, &StepError{Index: i, Err: ErrInvalidStep}
		}
	}
	return sc, nil
}
