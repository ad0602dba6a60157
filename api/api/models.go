/* models.go
 * This file contain the interfaces, structs and helper functions that are used by api consumers
 */

package api

import (
	"context"

	"octofit-tracker/api/render"
	"octofit-tracker/api/view"
)

// Screen describes one dashboard screen and how to build a live instance of it
type Screen struct {
	Name        string // route and command name, e.g. "leaderboard"
	Entity      string // api path segment fetched for this screen
	Title       string
	Icon        string
	Description string // landing page card text

	bind func(fetcher view.Fetcher, formatter *render.Formatter) Instance
}

// Page is what every surface renders: the screen heading plus either the loading indicator, an error banner or a table
type Page struct {
	Screen string
	Title  string
	Icon   string
	State  view.State
	Table  render.Table
	Error  string
}

// Loading reports whether the page should show the loading indicator
func (p Page) Loading() bool {
	return p.State == view.Loading
}

// Failed reports whether the page should show the error banner
func (p Page) Failed() bool {
	return p.State == view.Failed
}

// Instance is one mounted screen. It fetches once per mount
type Instance interface {
	// Current returns the page for the state the instance is in right now
	Current() Page
	// Wait blocks until the fetch settles or ctx ends
	Wait(ctx context.Context) (Page, error)
	// Unmount cancels the fetch. Results arriving afterwards are ignored
	Unmount()
}
