package spotify

// spotifyTrack is the slice of the Spotify search response this adapter
// reads.
type spotifyTrack struct {
	Name         string `json:"name"`
	PreviewURL   string `json:"preview_url"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
}
