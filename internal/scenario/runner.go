package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/neuralwired/dom"
)

// Driver is the scripted side of a document.
type Driver interface {
	Query(selector string) dom.Element
	Click(el dom.Element) bool
	Fill(el dom.Element, value string)
	Submit(form dom.Element) bool
	Back() bool
	Path() string
}

// Navigator moves the application to a path.
type Navigator interface {
	Navigate(url string)
}

// Observer is called after every step with its result.
type Observer func(index int, step Step, err error)

// Runner executes scenarios.
type Runner struct {
	drv      Driver
	nav      Navigator
	observer Observer
}

// NewRunner returns a runner driving drv. observer may be nil.
func NewRunner(drv Driver, nav Navigator, observer Observer) *Runner {
	return &Runner{drv: drv, nav: nav, observer: observer}
}

// Run executes the steps in order and stops at the first failure, which is
// returned as a *StepError.
func (r *Runner) Run(ctx context.Context, sc Scenario) error {
	for i, step := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := r.step(step)
		if r.observer != nil {
			r.observer(i, step, err)
		}
		if err != nil {
			return &StepError{Index: i, Kind: step.Kind(), Err: err}
		}
	}
	return nil
}

func (r *Runner) step(s Step) error {
	switch s.Kind() {
	case KindNavigate:
		r.nav.Navigate(s.Navigate)
	case KindClick:
		el, err := r.find(s.Click)
		if err != nil {
			return err
		}
		r.drv.Click(el)
	case KindFill:
		el, err := r.find(s.Fill.Selector)
		if err != nil {
			return err
		}
		r.drv.Fill(el, s.Fill.Value)
	case KindSubmit:
		el, err := r.find(s.Submit)
		if err != nil {
			return err
		}
		r.drv.Submit(el)
	case KindBack:
		if !r.drv.Back() {
			return ErrHistoryEmpty
		}
	case KindExpect:
		return r.expect(s.Expect)
	default:
		return ErrInvalidStep
	}
	return nil
}

func (r *Runner) find(selector string) (dom.Element, error) {
	el := r.drv.Query(selector)
	if el == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoElement, selector)
	}
	return el, nil
}

func (r *Runner) expect(e *Expect) error {
	if e.Path != "" {
		if got := r.drv.Path(); got != e.Path {
			return fmt.Errorf("%w: path is %s, want %s", ErrExpectation, got, e.Path)
		}
	}

	sel := e.selector()
	el := r.drv.Query(sel)
	if e.Missing {
		if el != nil {
			return fmt.Errorf("%w: %s is present", ErrExpectation, sel)
		}
		return nil
	}
	if e.Contains == "" {
		return nil
	}
	if el == nil {
		return fmt.Errorf("%w: %s", ErrNoElement, sel)
	}
	if !strings.Contains(el.TextContent(), e.Contains) {
		return fmt.Errorf("%w: %q not in %s", ErrExpectation, e.Contains, sel)
	}
	return nil
}
