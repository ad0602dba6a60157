/* api.go
 * This file contains the public methods for interacting with this package. Surfaces (web, bot, cli) should only
 * go through this file, not the view and render sub packages, so every screen is fetched and rendered the same way
 */

package api

import (
	"context"
	"fmt"
	"log"

	"octofit-tracker/api/logic"
	"octofit-tracker/api/render"
	"octofit-tracker/api/view"

	"golang.org/x/text/language"
)

// API provides methods for mounting and loading dashboard screens
type API struct {
	Fetcher   view.Fetcher
	Formatter *render.Formatter

	screens []Screen
}

// NewAPI creates a new API instance with the five dashboard screens registered.
// Preconditions: Receives the fetcher for the REST backend and the formatter for the viewer's locale. A nil formatter
// falls back to en-US
// Postconditions: Returns the API, or an error if no fetcher was given
func NewAPI(fetcher view.Fetcher, formatter *render.Formatter) (*API, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("a fetcher is required")
	}
	if formatter == nil {
		formatter = render.NewFormatter(language.AmericanEnglish)
	}

	return &API{
		Fetcher:   fetcher,
		Formatter: formatter,
		screens: []Screen{
			newScreen("users", "users", "👥", "Users",
				"Manage user profiles and track member fitness levels", render.UsersSpec),
			newScreen("activities", "activities", "🏃", "Activities",
				"Log and track fitness activities and calories burned", render.ActivitiesSpec),
			newScreen("teams", "teams", "🤝", "Teams",
				"Join teams and compete together for fitness goals", render.TeamsSpec),
			newScreen("leaderboard", "leaderboard", "🏆", "Leaderboard",
				"Check rankings and compete with other users", render.LeaderboardSpec),
			newScreen("workouts", "workouts", "💪", "Workouts",
				"Discover personalized workout suggestions", render.WorkoutsSpec),
		},
	}, nil
}

// Screens returns the registered screens in navigation order
func (a *API) Screens() []Screen {
	screens := make([]Screen, len(a.screens))
	copy(screens, a.screens)
	return screens
}

// ScreenNames returns the names of the registered screens in navigation order
func (a *API) ScreenNames() []string {
	names := make([]string, 0, len(a.screens))
	for _, screen := range a.screens {
		names = append(names, screen.Name)
	}
	return names
}

// Screen looks up a screen by its exact name
func (a *API) Screen(name string) (Screen, bool) {
	for _, screen := range a.screens {
		if screen.Name == name {
			return screen, true
		}
	}
	return Screen{}, false
}

// ResolveScreen looks up a screen from loosely typed user input such as "Leaderbord"
// Preconditions: Receives raw user input
// Postconditions: Returns the matching screen, or an error wrapping logic.ErrUnknownScreen
func (a *API) ResolveScreen(input string) (Screen, error) {
	name, err := logic.ResolveScreenName(input, a.ScreenNames())
	if err != nil {
		return Screen{}, err
	}
	screen, _ := a.Screen(name)
	return screen, nil
}

// Mount starts loading a screen and returns immediately. The caller must Unmount the instance when it is done with it
// Preconditions: Receives a context that bounds the fetch and the exact screen name
// Postconditions: Returns a mounted instance in the Loading state, or an error wrapping logic.ErrUnknownScreen
func (a *API) Mount(ctx context.Context, name string) (Instance, error) {
	screen, ok := a.Screen(name)
	if !ok {
		return nil, fmt.Errorf("%w: '%s'", logic.ErrUnknownScreen, name)
	}

	instance := screen.bind(a.Fetcher, a.Formatter)
	instance.(mountable).mount(ctx)
	return instance, nil
}

// LoadPage mounts a screen, waits for its fetch to settle and unmounts it. Used by one-shot surfaces (bot, cli)
// Preconditions: Receives a context that bounds the whole load and the exact screen name
// Postconditions: Returns the settled page. A fetch failure is reported in the page, not as an error. The error is
// only set for unknown screens or when ctx ends before the fetch settles
func (a *API) LoadPage(ctx context.Context, name string) (Page, error) {
	instance, err := a.Mount(ctx, name)
	if err != nil {
		return Page{}, err
	}
	defer instance.Unmount()

	page, err := instance.Wait(ctx)
	if err != nil {
		return page, fmt.Errorf("loading %s: %w", name, err)
	}
	return page, nil
}

type mountable interface {
	mount(ctx context.Context)
}

// newScreen binds an entity path to its record type and render spec
func newScreen[T any](name, entity, icon, title, description string, spec func(*render.Formatter) render.Spec[T]) Screen {
	return Screen{
		Name:        name,
		Entity:      entity,
		Title:       title,
		Icon:        icon,
		Description: description,
		bind: func(fetcher view.Fetcher, formatter *render.Formatter) Instance {
			return &screenInstance[T]{
				name:       name,
				title:      title,
				icon:       icon,
				controller: view.NewController[T](fetcher, entity),
				spec:       spec(formatter),
			}
		},
	}
}

// screenInstance is a controller paired with the spec that renders its records
type screenInstance[T any] struct {
	name       string
	title      string
	icon       string
	controller *view.Controller[T]
	spec       render.Spec[T]
}

func (s *screenInstance[T]) mount(ctx context.Context) {
	generation := s.controller.Mount(ctx)
	log.Printf("mounted %s screen (generation %d)", s.name, generation)
}

func (s *screenInstance[T]) Current() Page {
	return s.page(s.controller.Snapshot())
}

func (s *screenInstance[T]) Wait(ctx context.Context) (Page, error) {
	snapshot, err := s.controller.Wait(ctx)
	return s.page(snapshot), err
}

func (s *screenInstance[T]) Unmount() {
	s.controller.Unmount()
}

func (s *screenInstance[T]) page(snapshot view.Snapshot[T]) Page {
	page := Page{
		Screen: s.name,
		Title:  s.title,
		Icon:   s.icon,
		State:  snapshot.State,
		Table:  render.Table{Title: s.title, Icon: s.icon},
	}

	switch snapshot.State {
	case view.Ready:
		page.Table = render.Render(s.spec, snapshot.Items)
	case view.Failed:
		page.Error = snapshot.Error
	}
	return page
}

