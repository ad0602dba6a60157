/* api_test.go
 * Contains unit tests for api.go - mounting, loading and resolving every dashboard screen
 */

package api

import (
	"context"
	"errors"
	"testing"
	"time"

	"octofit-tracker/api/external"
	"octofit-tracker/api/logic"
	"octofit-tracker/api/render"
	"octofit-tracker/api/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newTestAPI(t *testing.T, fetcher *MockFetcher) *API {
	t.Helper()
	a, err := NewAPI(fetcher, render.NewFormatter(language.AmericanEnglish))
	require.NoError(t, err)
	return a
}

// region NewAPI tests

func TestNewAPI_RequiresFetcher(t *testing.T) {
	_, err := NewAPI(nil, nil)

	assert.Error(t, err)
}

func TestNewAPI_DefaultFormatter(t *testing.T) {
	a, err := NewAPI(NewMockFetcher(), nil)

	require.NoError(t, err)
	assert.Equal(t, "en-US", a.Formatter.Locale().String())
}

func TestScreens_NavigationOrder(t *testing.T) {
	a := newTestAPI(t, NewMockFetcher())

	assert.Equal(t, []string{"users", "activities", "teams", "leaderboard", "workouts"}, a.ScreenNames())
	screens := a.Screens()
	require.Len(t, screens, 5)
	assert.Equal(t, "🏆", screens[3].Icon)
	assert.Equal(t, "leaderboard", screens[3].Entity)
	assert.NotEmpty(t, screens[4].Description)
}

// endregion

// region Mount and LoadPage tests

func TestLoadPage_SingleUser(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("users", `[{"id":1,"name":"Ana","email":"a@x.com","total_points":50,"created_at":"2024-01-01"}]`)
	a := newTestAPI(t, fetcher)

	page, err := a.LoadPage(context.Background(), "users")

	require.NoError(t, err)
	assert.Equal(t, view.Ready, page.State)
	assert.Equal(t, "Users", page.Title)
	require.Len(t, page.Table.Rows, 1)
	assert.Equal(t, "Total Users: 1", page.Table.Badges[0].Label)
	assert.Empty(t, page.Error)
	assert.Equal(t, 1, fetcher.Calls("users"))
}

func TestLoadPage_EmptyActivitiesEnvelope(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("activities", `{"count":0,"results":[]}`)
	a := newTestAPI(t, fetcher)

	page, err := a.LoadPage(context.Background(), "activities")

	require.NoError(t, err)
	assert.Equal(t, view.Ready, page.State)
	assert.Len(t, page.Table.Rows, 0)
	require.Len(t, page.Table.Badges, 2)
	assert.Equal(t, "Total Activities: 0", page.Table.Badges[0].Label)
	assert.Equal(t, "Total Calories: 0", page.Table.Badges[1].Label)
}

func TestLoadPage_ServerErrorShowsBanner(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetError("leaderboard", &external.HTTPStatusError{Status: 500})
	a := newTestAPI(t, fetcher)

	page, err := a.LoadPage(context.Background(), "leaderboard")

	require.NoError(t, err)
	assert.True(t, page.Failed())
	assert.Equal(t, "HTTP error! status: 500", page.Error)
	assert.Empty(t, page.Table.Rows)
	assert.Empty(t, page.Table.Headers)
}

func TestLoadPage_MalformedBody(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("teams", `{"results": [`)
	a := newTestAPI(t, fetcher)

	page, err := a.LoadPage(context.Background(), "teams")

	require.NoError(t, err)
	assert.True(t, page.Failed())
	assert.Contains(t, page.Error, "invalid JSON response")
}

func TestLoadPage_MalformedFieldStillRenders(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("activities", `[{"activity_type":"run","calories_burned":"abc"},{"activity_type":"swim","calories_burned":100}]`)
	fetcher.SetPayload("users", `[{"id":1,"name":"Ana","team_id":7}]`)
	fetcher.SetPayload("workouts", `[{"id":2,"name":"Plank","duration":true,"difficulty":3}]`)
	a := newTestAPI(t, fetcher)

	page, err := a.LoadPage(context.Background(), "activities")
	require.NoError(t, err)
	assert.Equal(t, view.Ready, page.State)
	assert.Empty(t, page.Error)
	require.Len(t, page.Table.Rows, 2)
	assert.Equal(t, "Total Calories: 100", page.Table.Badges[1].Label)

	page, err = a.LoadPage(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, view.Ready, page.State)
	assert.Len(t, page.Table.Rows, 1)

	page, err = a.LoadPage(context.Background(), "workouts")
	require.NoError(t, err)
	assert.Equal(t, view.Ready, page.State)
	assert.Len(t, page.Table.Rows, 1)
}

func TestLoadPage_WorkoutCardioHard(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("workouts", `[{"id":4,"name":"Sprints","description":"Go fast","difficulty":"Hard","duration":20,"category":"Cardio"}]`)
	a := newTestAPI(t, fetcher)

	page, err := a.LoadPage(context.Background(), "workouts")

	require.NoError(t, err)
	require.Len(t, page.Table.Rows, 1)
	assert.Contains(t, page.Table.Headers, "Category")
	assert.Equal(t, "Total Workouts: 1", page.Table.Badges[0].Label)
}

func TestLoadPage_UnknownScreen(t *testing.T) {
	a := newTestAPI(t, NewMockFetcher())

	_, err := a.LoadPage(context.Background(), "achievements")

	assert.True(t, errors.Is(err, logic.ErrUnknownScreen))
}

func TestLoadPage_ContextEndsFirst(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("users", `[]`)
	fetcher.Delay = time.Second
	a := newTestAPI(t, fetcher)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	page, _ := a.LoadPage(ctx, "users")

	assert.NotEqual(t, view.Ready, page.State)
}

func TestMount_StartsLoading(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("teams", `[]`)
	fetcher.Delay = 200 * time.Millisecond
	a := newTestAPI(t, fetcher)

	instance, err := a.Mount(context.Background(), "teams")
	require.NoError(t, err)
	defer instance.Unmount()

	page := instance.Current()
	assert.True(t, page.Loading())
	assert.Equal(t, "Teams", page.Table.Title)
	assert.Empty(t, page.Table.Rows)
}

func TestMount_UnmountDiscardsLateResult(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("users", `[{"id":1}]`)
	fetcher.Delay = 50 * time.Millisecond
	a := newTestAPI(t, fetcher)

	instance, err := a.Mount(context.Background(), "users")
	require.NoError(t, err)
	instance.Unmount()

	page, err := instance.Wait(context.Background())
	require.NoError(t, err)
	time.Sleep(100 * time.Millisecond)

	assert.True(t, page.Loading())
	assert.True(t, instance.Current().Loading())
	assert.Empty(t, instance.Current().Table.Rows)
}

func TestMount_EachMountFetchesOnce(t *testing.T) {
	fetcher := NewMockFetcher()
	fetcher.SetPayload("workouts", `[]`)
	a := newTestAPI(t, fetcher)

	for i := 0; i < 3; i++ {
		_, err := a.LoadPage(context.Background(), "workouts")
		require.NoError(t, err)
	}

	assert.Equal(t, 3, fetcher.Calls("workouts"))
}

// endregion

// region ResolveScreen tests

func TestResolveScreen(t *testing.T) {
	a := newTestAPI(t, NewMockFetcher())

	screen, err := a.ResolveScreen("Leaderbord")

	require.NoError(t, err)
	assert.Equal(t, "leaderboard", screen.Name)
}

func TestResolveScreen_Unknown(t *testing.T) {
	a := newTestAPI(t, NewMockFetcher())

	_, err := a.ResolveScreen("qqqqqqq")

	assert.ErrorIs(t, err, logic.ErrUnknownScreen)
}

// endregion
