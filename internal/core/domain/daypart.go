package domain

// DayPartOf maps an hour of day to a coarse daypart label.
// Hours outside [0,24) bucket to "night"; the function is total and
// performs no input validation.
func DayPartOf(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}
