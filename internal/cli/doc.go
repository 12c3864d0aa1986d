// Package cli implements the neuralwired command: a development server for
// the client, a headless browser for scripted sessions against a backend,
// and a Markdown importer.
package cli
