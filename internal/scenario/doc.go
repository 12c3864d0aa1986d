// Package scenario runs scripted browsing sessions against a document.
//
// A scenario is a YAML file with a list of steps, each naming exactly one
// action:
//
//	name: login and edit
//	steps:
//	  - navigate: /login
//	  - fill: {selector: "#username", value: admin}
//	  - fill: {selector: "#password", value: secret}
//	  - submit: "#login-form"
//	  - expect: {path: /, contains: Welcome}
//	  - click: 'a[href="/manage"]'
//	  - back: true
package scenario
