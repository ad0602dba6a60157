/* lookups.go
 * Contains the static display lookups: activity and category icons, difficulty tones and leaderboard rank tiers.
 * Every lookup has an explicit fallback so unknown values still render
 */

package render

const (
	DefaultActivityIcon = "💪"
	DefaultCategoryIcon = "🏋️"
	DefaultAvatar       = "👤"
)

var activityIcons = map[string]string{
	"run":           "🏃",
	"Running":       "🏃",
	"cycle":         "🚴",
	"Cycling":       "🚴",
	"swim":          "🏊",
	"Swimming":      "🏊",
	"weights":       "🏋️",
	"Weightlifting": "🏋️",
	"yoga":          "🧘",
	"Yoga":          "🧘",
	"walk":          "🚶",
	"Walking":       "🚶",
	"hiit":          "💥",
	"HIIT":          "💥",
}

var categoryIcons = map[string]string{
	"Cardio":      "❤️",
	"Strength":    "💪",
	"Flexibility": "🤸",
	"Balance":     "⚖️",
	"Endurance":   "🏃",
}

var difficultyTones = map[string]Tone{
	"Easy":   ToneSuccess,
	"Medium": ToneWarning,
	"Hard":   ToneDanger,
}

// ActivityIcon returns the icon for an activity type, matched exactly against the known short and display names
func ActivityIcon(activityType string) string {
	if icon, ok := activityIcons[activityType]; ok {
		return icon
	}
	return DefaultActivityIcon
}

// CategoryIcon returns the icon for a workout category
func CategoryIcon(category string) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	return DefaultCategoryIcon
}

// DifficultyTone returns the badge tone for a workout difficulty. Unknown difficulties are neutral
func DifficultyTone(difficulty string) Tone {
	if tone, ok := difficultyTones[difficulty]; ok {
		return tone
	}
	return ToneNeutral
}

// RankTier returns the badge tone for a zero-based leaderboard position.
// Only position matters, the entry's points are never consulted
func RankTier(index int) Tone {
	switch index {
	case 0:
		return ToneGold
	case 1:
		return ToneSilver
	case 2:
		return ToneBronze
	default:
		return ToneNeutral
	}
}

var rankMedals = map[Tone]string{
	ToneGold:   "🥇",
	ToneSilver: "🥈",
	ToneBronze: "🥉",
}

// RankMedal returns the medal glyph for a podium tier, or "" for a plain numbered badge
func RankMedal(tier Tone) string {
	return rankMedals[tier]
}
