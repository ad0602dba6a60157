/* handlers.go
 * Contains the HTTP handlers for the dashboard. Screen pages are streamed: the loading indicator is flushed as
 * soon as the screen mounts, and the error banner or table follows once the fetch settles
 */

package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html templates/hero.md
var templateFS embed.FS

// mdRenderer renders the landing page copy. Raw HTML in the source is not passed through
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// NewServer parses the templates and renders the landing page copy
// Preconditions: Receives a config with a non nil API
// Postconditions: Returns a server ready to be routed, or an error if the embedded assets are broken
func NewServer(cfg Config) (*Server, error) {
	if cfg.API == nil {
		return nil, fmt.Errorf("web server requires an API")
	}

	templates, err := template.New("dashboard").
		Funcs(template.FuncMap{"lower": strings.ToLower}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	source, err := templateFS.ReadFile("templates/hero.md")
	if err != nil {
		return nil, fmt.Errorf("error reading landing copy: %w", err)
	}
	var hero bytes.Buffer
	if err := mdRenderer.Convert(source, &hero); err != nil {
		return nil, fmt.Errorf("error rendering landing copy: %w", err)
	}

	return &Server{
		api:       cfg.API,
		templates: templates,
		hero:      template.HTML(hero.String()),
	}, nil
}

// Router binds the handlers to their routes
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.HealthHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/", s.LandingHandler)
	r.Get("/{screen}", s.ScreenHandler)

	return r
}

// HealthHandler reports that the process is up. It does not touch the REST backend
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// LandingHandler renders the welcome text and one card per screen
func (s *Server) LandingHandler(w http.ResponseWriter, r *http.Request) {
	data := s.newPageData("", "")
	data.Hero = s.hero

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "landing", data); err != nil {
		log.Println("failed to render landing page:", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

// ScreenHandler mounts the requested screen for the lifetime of the request
// Preconditions: HTTP server has been started, receives HTTP ResponseWriter and Http Request with a {screen} param
// Postconditions: Streams the loading indicator, then the error banner or the table. Unknown screens are 404.
// If the client goes away first the fetch is cancelled and its result discarded
func (s *Server) ScreenHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "screen")
	screen, ok := s.api.Screen(name)
	if !ok {
		http.NotFound(w, r)
		return
	}

	instance, err := s.api.Mount(r.Context(), screen.Name)
	if err != nil {
		log.Printf("failed to mount %s screen: %v", screen.Name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	defer instance.Unmount()

	data := s.newPageData(screen.Title, screen.Name)
	data.Page = instance.Current()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "screen_head", data); err != nil {
		log.Printf("failed to render %s screen: %v", screen.Name, err)
		return
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}

	page, err := instance.Wait(r.Context())
	if err != nil {
		log.Printf("%s screen abandoned before the fetch settled: %v", screen.Name, err)
		return
	}

	data.Page = page
	if err := s.templates.ExecuteTemplate(w, "screen_body", data); err != nil {
		log.Printf("failed to render %s screen: %v", screen.Name, err)
	}
}

func (s *Server) newPageData(title string, active string) pageData {
	return pageData{
		Lang:    s.api.Formatter.Locale().String(),
		Title:   title,
		Active:  active,
		Screens: s.api.Screens(),
	}
}
