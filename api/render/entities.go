/* entities.go
 * Contains the table specs for the five OctoFit screens: users, activities, teams, leaderboard and workouts
 */

package render

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"octofit-tracker/api/shared"
)

const (
	NoTeam      = "No Team"
	UnknownUser = "Unknown"
	EmptyNotes  = "-"
)

func countBadge(label string, n int) Badge {
	return Badge{Label: fmt.Sprintf("%s: %d", label, n), Tone: TonePrimary}
}

// Capitalize upper-cases the first letter and leaves the rest untouched, e.g. run -> Run, HIIT -> HIIT
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// TeamLabel strips the team_ prefix from a team id and upper-cases the rest, e.g. team_marvel -> MARVEL
func TeamLabel(teamID string) string {
	return strings.ToUpper(strings.TrimPrefix(teamID, "team_"))
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// UsersSpec renders the users screen
func UsersSpec(f *Formatter) Spec[shared.User] {
	return Spec[shared.User]{
		Title: "Users",
		Icon:  "👥",
		Columns: []Column[shared.User]{
			{Header: "Avatar", Cell: func(_ int, u shared.User) Cell {
				return Cell{Text: orDefault(u.Avatar.String(), DefaultAvatar)}
			}},
			{Header: "Name", Cell: func(_ int, u shared.User) Cell {
				return Cell{Text: orDefault(u.Name.String(), NotAvailable), Strong: true}
			}},
			{Header: "Superhero Name", Cell: func(_ int, u shared.User) Cell {
				return Cell{Text: orDefault(u.Alias(), NotAvailable), Strong: true}
			}},
			{Header: "Email", Cell: func(_ int, u shared.User) Cell {
				return Cell{Text: u.Email.String(), Muted: true}
			}},
			{Header: "Team", Cell: func(_ int, u shared.User) Cell {
				if u.TeamID.String() == "" {
					return Cell{Text: NoTeam, Muted: true}
				}
				return Cell{Text: TeamLabel(u.TeamID.String()), Tone: ToneInfo}
			}},
			{Header: "Total Points", Cell: func(_ int, u shared.User) Cell {
				return Cell{Text: fmt.Sprintf("%d pts", u.TotalPoints.Int()), Tone: ToneSuccess}
			}},
			{Header: "Date Joined", Cell: func(_ int, u shared.User) Cell {
				return Cell{Text: f.ShortDate(u.CreatedAt.String())}
			}},
		},
		Aggregates: func(users []shared.User) []Badge {
			return []Badge{countBadge("Total Users", len(users))}
		},
	}
}

// TotalCalories sums calories_burned across activities, counting missing values as 0
func TotalCalories(activities []shared.Activity) int {
	total := 0
	for _, a := range activities {
		total += a.CaloriesBurned.Int()
	}
	return total
}

// ActivitiesSpec renders the activities screen
func ActivitiesSpec(f *Formatter) Spec[shared.Activity] {
	return Spec[shared.Activity]{
		Title: "Activities",
		Icon:  "🏃",
		Columns: []Column[shared.Activity]{
			{Header: "User", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: orDefault(a.UserName.String(), UnknownUser), Strong: true}
			}},
			{Header: "Activity Type", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: Capitalize(a.ActivityType.String()), Icon: ActivityIcon(a.ActivityType.String()), Strong: true}
			}},
			{Header: "Duration (min)", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: fmt.Sprintf("%d min", a.DurationMinutes.Int()), Tone: ToneInfo}
			}},
			{Header: "Calories Burned", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: fmt.Sprintf("%d cal", a.CaloriesBurned.Int()), Tone: ToneSuccess}
			}},
			{Header: "Points Earned", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: fmt.Sprintf("%d pts", a.PointsEarned.Int()), Tone: ToneWarning}
			}},
			{Header: "Date", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: f.MediumDate(a.Date.String())}
			}},
			{Header: "Notes", Cell: func(_ int, a shared.Activity) Cell {
				return Cell{Text: orDefault(a.Notes.String(), EmptyNotes), Muted: true}
			}},
		},
		Aggregates: func(activities []shared.Activity) []Badge {
			return []Badge{
				countBadge("Total Activities", len(activities)),
				{Label: "Total Calories: " + f.Number(TotalCalories(activities)), Tone: ToneSuccess},
			}
		},
	}
}

// TeamsSpec renders the teams screen
func TeamsSpec(f *Formatter) Spec[shared.Team] {
	return Spec[shared.Team]{
		Title: "Teams",
		Icon:  "🤝",
		Columns: []Column[shared.Team]{
			{Header: "#", Cell: func(_ int, t shared.Team) Cell {
				return Cell{Text: t.ID.String(), Strong: true}
			}},
			{Header: "Team Name", Cell: func(_ int, t shared.Team) Cell {
				return Cell{Text: t.Name.String(), Strong: true}
			}},
			{Header: "Description", Cell: func(_ int, t shared.Team) Cell {
				return Cell{Text: t.Description.String()}
			}},
			{Header: "Created Date", Cell: func(_ int, t shared.Team) Cell {
				return Cell{Text: f.ShortDate(t.Created()), Tone: ToneNeutral}
			}},
		},
		Aggregates: func(teams []shared.Team) []Badge {
			return []Badge{countBadge("Total Teams", len(teams))}
		},
	}
}

// LeaderboardSpec renders the leaderboard. Rank is the 1-indexed position in the received list, no sorting is applied
func LeaderboardSpec(f *Formatter) Spec[shared.LeaderboardEntry] {
	return Spec[shared.LeaderboardEntry]{
		Title: "Leaderboard",
		Icon:  "🏆",
		Columns: []Column[shared.LeaderboardEntry]{
			{Header: "Rank", Cell: func(i int, _ shared.LeaderboardEntry) Cell {
				tier := RankTier(i)
				return Cell{Text: strconv.Itoa(i + 1), Icon: RankMedal(tier), Tone: tier}
			}},
			{Header: "User", Cell: func(_ int, e shared.LeaderboardEntry) Cell {
				return Cell{Text: e.DisplayName(), Strong: true}
			}},
			{Header: "Team", Cell: func(_ int, e shared.LeaderboardEntry) Cell {
				if e.Team.String() == "" {
					return Cell{Text: NoTeam, Muted: true}
				}
				return Cell{Text: e.Team.String()}
			}},
			{Header: "Total Activities", Cell: func(_ int, e shared.LeaderboardEntry) Cell {
				return Cell{Text: strconv.Itoa(e.TotalActivities.Int()), Tone: ToneInfo}
			}},
			{Header: "Total Calories", Cell: func(_ int, e shared.LeaderboardEntry) Cell {
				return Cell{Text: f.Number(e.TotalCalories.Int()) + " cal", Tone: ToneSuccess}
			}},
			{Header: "Points", Cell: func(_ int, e shared.LeaderboardEntry) Cell {
				return Cell{Text: fmt.Sprintf("%d pts", e.Points.Int()), Tone: ToneWarning}
			}},
		},
		Aggregates: func(entries []shared.LeaderboardEntry) []Badge {
			return []Badge{countBadge("Total Participants", len(entries))}
		},
	}
}

// WorkoutsSpec renders the workouts screen
func WorkoutsSpec(f *Formatter) Spec[shared.Workout] {
	return Spec[shared.Workout]{
		Title: "Workouts",
		Icon:  "💪",
		Columns: []Column[shared.Workout]{
			{Header: "#", Cell: func(_ int, w shared.Workout) Cell {
				return Cell{Text: w.ID.String(), Strong: true}
			}},
			{Header: "Workout Name", Cell: func(_ int, w shared.Workout) Cell {
				return Cell{Text: w.DisplayName(), Strong: true}
			}},
			{Header: "Description", Cell: func(_ int, w shared.Workout) Cell {
				return Cell{Text: w.Description.String()}
			}},
			{Header: "Difficulty", Cell: func(_ int, w shared.Workout) Cell {
				return Cell{Text: w.Difficulty.String(), Tone: DifficultyTone(w.Difficulty.String())}
			}},
			{Header: "Duration (min)", Cell: func(_ int, w shared.Workout) Cell {
				return Cell{Text: fmt.Sprintf("%d min", w.Duration.Int()), Tone: ToneInfo}
			}},
			{Header: "Category", Cell: func(_ int, w shared.Workout) Cell {
				return Cell{Text: w.Category.String(), Icon: CategoryIcon(w.Category.String())}
			}},
		},
		Aggregates: func(workouts []shared.Workout) []Badge {
			return []Badge{countBadge("Total Workouts", len(workouts))}
		},
	}
}
