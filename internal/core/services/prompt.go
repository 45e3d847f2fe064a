package services

import (
	"fmt"

	"github.com/ninja-hatori-dev/mood-harmony/internal/core/domain"
)

// BuildPrompt constructs the instruction sent to the generative model,
// embedding the mood and the daypart for the given hour. The JSON shape it
// mandates is the contract ParseRecommendation depends on; the ~150-200
// character explanation length is a guideline for the model and is not
// enforced anywhere.
func BuildPrompt(mood string, hour int) string {
	return fmt.Sprintf(`As an expert in viral songs, provide personalized recommendations for someone feeling %s during the %s (current hour: %d:00).
Please suggest:
1. A specific type of cuisine or dish that complements their emotional state.
2. 5 specific songs with their full titles including artist names that match the mood.
3. A brief explanation in about 150 to 200 characters of why these recommendations are beneficial.

Format the response as a JSON object with the following structure:
{
  "cuisine": "Recommended cuisine or dish",
  "songs": [
    {"title": "Song Title 1 - Artist Name"},
    {"title": "Song Title 2 - Artist Name"},
    {"title": "Song Title 3 - Artist Name"},
    {"title": "Song Title 4 - Artist Name"},
    {"title": "Song Title 5 - Artist Name"}
  ],
  "explanation": "Brief explanation of why these recommendations are beneficial"
}`, mood, domain.DayPartOf(hour), hour)
}
