package spotify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/ewilliams-labs/lineup/internal/core/domain"
	"github.com/ewilliams-labs/lineup/internal/logging"
	"github.com/ewilliams-labs/lineup/internal/metrics"
)

// ArtistTrackFeatures returns the feature vectors of the artist's top tracks.
// The artist must be the first search result and match the requested name
// case-insensitively; otherwise no vectors are returned.
func (c *Client) ArtistTrackFeatures(ctx context.Context, artistName string) ([]domain.AudioFeatureVector, error) {
	artist, ok, err := c.searchArtist(ctx, artistName)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to find artist %q: %w", artistName, err)
	}
	if !ok {
		logging.Ctx(ctx).Debug().Str("component", "spotify").Str("artist", artistName).Msg("no exact artist match")
		return nil, nil
	}

	tracks, err := c.getTopTracks(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("spotify adapter: failed to get top tracks for artist %q: %w", artistName, err)
	}
	if len(tracks) > c.opts.TracksPerArtist {
		tracks = tracks[:c.opts.TracksPerArtist]
	}
	if len(tracks) == 0 {
		return nil, nil
	}

	trackIDs := make([]string, len(tracks))
	for i, t := range tracks {
		trackIDs[i] = t.ID
	}
	features, err := c.getAudioFeaturesBatch(ctx, trackIDs)
	if err != nil {
		return nil, err
	}

	vectors := make([]domain.AudioFeatureVector, 0, len(tracks))
	for _, id := range trackIDs {
		if f, ok := features[id]; ok {
			vectors = append(vectors, mapFeaturesToDomain(f))
		}
	}
	return vectors, nil
}

// ArtistTrackFeaturesBatch looks up several artists concurrently. A failed
// artist is logged and left out of the result; only cancellation fails the
// batch.
func (c *Client) ArtistTrackFeaturesBatch(ctx context.Context, artists []string) (map[string][]domain.AudioFeatureVector, error) {
	var (
		mu     sync.Mutex
		result = make(map[string][]domain.AudioFeatureVector, len(artists))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.LookupConcurrency)
	for _, artist := range artists {
		artist := artist
		g.Go(func() error {
			vectors, err := c.ArtistTrackFeatures(gctx, artist)
			if err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				metrics.ArtistLookups.WithLabelValues("error").Inc()
				logging.Ctx(ctx).Warn().Err(err).Str("component", "spotify").Str("artist", artist).Msg("artist lookup failed, skipping artist")
				return nil
			}
			mu.Lock()
			result[artist] = vectors
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("spotify adapter: batch lookup: %w", err)
	}
	return result, nil
}

// searchArtist returns the first search result when its name matches.
func (c *Client) searchArtist(ctx context.Context, artistName string) (spotifyArtist, bool, error) {
	query := url.Values{}
	query.Set("q", artistName)
	query.Set("type", "artist")
	query.Set("limit", "1")
	query.Set("market", c.opts.Market)

	var body artistSearchResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/search?%s", c.baseURL, query.Encode()), &body); err != nil {
		return spotifyArtist{}, false, err
	}

	if len(body.Artists.Items) == 0 {
		return spotifyArtist{}, false, nil
	}
	first := body.Artists.Items[0]
	if !strings.EqualFold(strings.TrimSpace(first.Name), strings.TrimSpace(artistName)) {
		return spotifyArtist{}, false, nil
	}
	return first, true, nil
}

// getTopTracks fetches an artist's top tracks from Spotify.
func (c *Client) getTopTracks(ctx context.Context, artistID string) ([]spotifyTrack, error) {
	query := url.Values{}
	query.Set("market", c.opts.Market)

	var body topTracksResponse
	if err := c.getJSON(ctx, fmt.Sprintf("%s/artists/%s/top-tracks?%s", c.baseURL, url.PathEscape(artistID), query.Encode()), &body); err != nil {
		return nil, err
	}
	return body.Tracks, nil
}
