package spotify

import (
	"strings"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

func mapFeaturesToDomain(f spotifyAudioFeatures) domain.AudioFeatureVector {
	return domain.AudioFeatureVector{
		Danceability:     f.Danceability,
		Energy:           f.Energy,
		Speechiness:      f.Speechiness,
		Acousticness:     f.Acousticness,
		Instrumentalness: f.Instrumentalness,
		Liveness:         f.Liveness,
		Valence:          f.Valence,
	}
}

// mapTrackToDomain converts a raw Spotify track to a domain track.
// features can be nil when the catalog has no analysis for the track.
func mapTrackToDomain(st spotifyTrack, features *spotifyAudioFeatures) domain.Track {
	names := make([]string, 0, len(st.Artists))
	for _, a := range st.Artists {
		names = append(names, a.Name)
	}

	dt := domain.Track{
		ID:     st.ID,
		Title:  st.Name,
		Artist: strings.Join(names, ", "),
	}
	if features != nil {
		dt.Features = mapFeaturesToDomain(*features)
	}
	return dt
}

// mapPlaylistToDomain keeps only the tracks that have features.
func mapPlaylistToDomain(id string, tracks []spotifyTrack, features map[string]spotifyAudioFeatures) domain.Playlist {
	out := make([]domain.Track, 0, len(tracks))
	for _, st := range tracks {
		f, ok := features[st.ID]
		if !ok {
			continue
		}
		out = append(out, mapTrackToDomain(st, &f))
	}
	return domain.Playlist{ID: id, Tracks: out}
}
