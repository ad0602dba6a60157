/* models.go
 * Contains the configuration and server types for the web dashboard
 */

package web

import (
	"html/template"

	"octofit-tracker/api/api"
)

// Config holds the configuration for the web server
type Config struct {
	Addr string
	API  *api.API
}

// Server is the HTTP server that renders the dashboard screens
type Server struct {
	api       *api.API
	templates *template.Template
	hero      template.HTML
}

// pageData is passed to every template
type pageData struct {
	Lang    string
	Title   string
	Active  string
	Screens []api.Screen
	Hero    template.HTML
	Page    api.Page
}
