package component

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/neuralwired/dom"
	"github.com/dmitrymomot/neuralwired/pkg/logger"
)

// Element ids of the login form.
const (
	LoginFormID   = "login-form"
	UsernameID    = "username"
	PasswordID    = "password"
	inputErrClass = "input-error"
)

// Login is the sign-in form.
type Login struct {
	deps Deps
}

// NewLogin creates the login form.
func NewLogin(deps Deps) *Login {
	return &Login{deps: deps}
}

// Render returns the login form.
func (l *Login) Render() templ.Component {
	return view(func(m *markup) {
		m.raw(`<div class="login-container"><h1>Login</h1>`,
			`<form id="`+LoginFormID+`" class="login-form">`,
			`<div class="form-group"><label for="`+UsernameID+`">Username</label>`,
			`<input type="text" id="`+UsernameID+`" name="username" autocomplete="username" required></div>`,
			`<div class="form-group"><label for="`+PasswordID+`">Password</label>`,
			`<input type="password" id="`+PasswordID+`" name="password" autocomplete="current-password" required></div>`,
			`<button type="submit" class="btn btn-primary">Login</button>`,
			`</form></div>`)
	})
}

// PostRender wires the form submission.
func (l *Login) PostRender(ctx context.Context) {
	form := l.deps.Doc.ElementByID(LoginFormID)
	if form == nil {
		return
	}
	ctx = detach(ctx)
	form.AddEventListener(dom.EventSubmit, func(e *dom.Event) {
		e.PreventDefault()
		l.submit(ctx)
	})
}

func (l *Login) submit(ctx context.Context) {
	user := l.deps.Doc.ElementByID(UsernameID)
	pass := l.deps.Doc.ElementByID(PasswordID)
	if user == nil || pass == nil {
		return
	}

	_, err := l.deps.API.Login(ctx, strings.TrimSpace(user.Value()), pass.Value())
	if err != nil {
		l.deps.logger().InfoContext(ctx, "login rejected", logger.Component("login"), logger.Error(err))
		user.SetClassName(inputErrClass)
		pass.SetClassName(inputErrClass)
		l.deps.Flash.Error("Login failed: Invalid username or password")
		return
	}

	l.deps.Flash.Success("Logged in successfully")
	l.deps.Router.Navigate("/")
}
