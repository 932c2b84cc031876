package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
)

// PlaylistFeatures averages the features of the playlist's first tracks.
// An unknown playlist is reported as domain.ErrNotFound.
func (c *Client) PlaylistFeatures(ctx context.Context, playlistID string) (domain.AudioFeatureVector, error) {
	playlist, err := c.getPlaylist(ctx, playlistID)
	if err != nil {
		return domain.AudioFeatureVector{}, err
	}

	vec, err := playlist.Analyze()
	if err != nil {
		return domain.AudioFeatureVector{}, fmt.Errorf("spotify adapter: playlist %q: %w", playlistID, err)
	}
	return vec, nil
}

// getPlaylist fetches the sampled playlist tracks together with their features.
func (c *Client) getPlaylist(ctx context.Context, playlistID string) (domain.Playlist, error) {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(c.opts.PlaylistTrackLimit))
	query.Set("market", c.opts.Market)

	var body playlistTracksResponse
	u := fmt.Sprintf("%s/playlists/%s/tracks?%s", c.baseURL, url.PathEscape(playlistID), query.Encode())
	if err := c.getJSON(ctx, u, &body); err != nil {
		return domain.Playlist{}, fmt.Errorf("spotify adapter: playlist %q: %w", playlistID, err)
	}

	tracks := make([]spotifyTrack, 0, len(body.Items))
	ids := make([]string, 0, len(body.Items))
	for _, item := range body.Items {
		if item.Track == nil || item.Track.ID == "" {
			continue
		}
		tracks = append(tracks, *item.Track)
		ids = append(ids, item.Track.ID)
	}

	features, err := c.getAudioFeaturesBatch(ctx, ids)
	if err != nil {
		return domain.Playlist{}, err
	}
	return mapPlaylistToDomain(playlistID, tracks, features), nil
}
