/* models.go
 * This file contain the entity records returned by the OctoFit REST API, and the lenient JSON types they are built from.
 * Records are passed through as received, the renderer is responsible for display fallbacks
 */

package shared

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ID is a record identifier. The API returns either integer primary keys or ObjectId strings, so both are accepted
type ID string

// UnmarshalJSON accepts a JSON string or a JSON number. Anything else is blank
func (id *ID) UnmarshalJSON(data []byte) error {
	var t Text
	if err := t.UnmarshalJSON(data); err != nil {
		return err
	}
	*id = ID(t)
	return nil
}

// String returns the id as text
func (id ID) String() string {
	return string(id)
}

// Text is an optional string field. A malformed value is not an error, it decodes blank and the renderer shows its
// fallback. Numbers keep their literal text, e.g. "team_id": 7 is "7"
type Text string

// UnmarshalJSON accepts any JSON value. Strings and numbers are kept, null, booleans, objects and arrays are blank
func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = ""
	if len(data) == 0 {
		return nil
	}

	switch {
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			*t = Text(s)
		}
	case data[0] == '-' || (data[0] >= '0' && data[0] <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err == nil {
			*t = Text(n.String())
		}
	}
	return nil
}

// String returns the field as a plain string
func (t Text) String() string {
	return string(t)
}

// Count is an integer field that defaults to 0 when absent, null or malformed.
// Floats are truncated and numeric strings are parsed
type Count int

// UnmarshalJSON accepts any JSON value. Numbers and numeric strings are kept, everything else is 0
func (c *Count) UnmarshalJSON(data []byte) error {
	f, ok := parseNumber(data)
	if !ok {
		*c = 0
		return nil
	}
	*c = Count(math.Trunc(f))
	return nil
}

// Int returns the count as an int
func (c Count) Int() int {
	return int(c)
}

// Decimal is a fractional field, e.g. a distance in km, that defaults to 0 when absent, null or malformed
type Decimal float64

// UnmarshalJSON accepts any JSON value. Numbers and numeric strings are kept, everything else is 0
func (d *Decimal) UnmarshalJSON(data []byte) error {
	f, ok := parseNumber(data)
	if !ok {
		f = 0
	}
	*d = Decimal(f)
	return nil
}

// Float returns the value as a float64
func (d Decimal) Float() float64 {
	return float64(d)
}

// parseNumber reads a JSON number or a numeric JSON string. ok is false for any other value
func parseNumber(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return 0, false
	}

	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0, false
		}
		raw = strings.TrimSpace(s)
	}

	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return float64(n), true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// User is a member profile
type User struct {
	ID            ID    `json:"id"`
	Name          Text  `json:"name"`
	SuperheroName Text  `json:"superhero_name"`
	Username      Text  `json:"username"`
	Email         Text  `json:"email"`
	TeamID        Text  `json:"team_id"`
	TotalPoints   Count `json:"total_points"`
	CreatedAt     Text  `json:"created_at"`
	Avatar        Text  `json:"avatar"`
}

// Alias returns the superhero name, falling back to the username. Empty when neither is set
func (u User) Alias() string {
	if u.SuperheroName != "" {
		return u.SuperheroName.String()
	}
	return u.Username.String()
}

// Activity is a single logged workout session
type Activity struct {
	ID              ID      `json:"id"`
	UserName        Text    `json:"user_name"`
	ActivityType    Text    `json:"activity_type"`
	DurationMinutes Count   `json:"duration_minutes"`
	CaloriesBurned  Count   `json:"calories_burned"`
	PointsEarned    Count   `json:"points_earned"`
	Distance        Decimal `json:"distance"`
	Date            Text    `json:"date"`
	Notes           Text    `json:"notes"`
}

// Team is a group of users competing together
type Team struct {
	ID          ID   `json:"id"`
	Name        Text `json:"name"`
	Description Text `json:"description"`
	CreatedDate Text `json:"created_date"`
	CreatedAt   Text `json:"created_at"`
}

// Created returns created_date, or created_at for backends that only expose the model field name
func (t Team) Created() string {
	if t.CreatedDate != "" {
		return t.CreatedDate.String()
	}
	return t.CreatedAt.String()
}

// LeaderboardEntry is one row of the leaderboard. Rank is not stored, it is the entry's position in the response
type LeaderboardEntry struct {
	ID              ID    `json:"id"`
	User            Text  `json:"user"`
	Username        Text  `json:"username"`
	Team            Text  `json:"team"`
	TotalActivities Count `json:"total_activities"`
	TotalCalories   Count `json:"total_calories"`
	Points          Count `json:"points"`
}

// DisplayName returns user, or username when user is missing
func (e LeaderboardEntry) DisplayName() string {
	if e.User != "" {
		return e.User.String()
	}
	return e.Username.String()
}

// Workout is a suggested workout
type Workout struct {
	ID          ID    `json:"id"`
	Name        Text  `json:"name"`
	Title       Text  `json:"title"`
	Description Text  `json:"description"`
	Difficulty  Text  `json:"difficulty"`
	Duration    Count `json:"duration"`
	Category    Text  `json:"category"`
}

// DisplayName returns name, or title when name is missing
func (w Workout) DisplayName() string {
	if w.Name != "" {
		return w.Name.String()
	}
	return w.Title.String()
}
