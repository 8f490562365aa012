package handlers

import (
	"strings"
	"unicode/utf8"
)

// maxMissionLen caps the mission statement length in runes.
const maxMissionLen = 5000

// validateMission checks the mission input and returns the first error found.
func validateMission(mission string) string {
	mission = strings.TrimSpace(mission)
	if mission == "" {
		return "Please describe your mission before weaving."
	}
	if utf8.RuneCountInString(mission) > maxMissionLen {
		return "Mission is too long (max 5,000 characters)."
	}
	return ""
}
