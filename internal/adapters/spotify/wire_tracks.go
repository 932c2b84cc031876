package spotify

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// maxAudioFeatureIDs is the per-request limit of the audio-features endpoint.
const maxAudioFeatureIDs = 100

// getAudioFeaturesBatch fetches audio features for multiple tracks, keyed by
// track ID. Tracks the catalog has no analysis for are absent.
func (c *Client) getAudioFeaturesBatch(ctx context.Context, trackIDs []string) (map[string]spotifyAudioFeatures, error) {
	result := make(map[string]spotifyAudioFeatures, len(trackIDs))
	for start := 0; start < len(trackIDs); start += maxAudioFeatureIDs {
		end := min(start+maxAudioFeatureIDs, len(trackIDs))

		query := url.Values{}
		query.Set("ids", strings.Join(trackIDs[start:end], ","))

		var body audioFeaturesResponse
		if err := c.getJSON(ctx, fmt.Sprintf("%s/audio-features?%s", c.baseURL, query.Encode()), &body); err != nil {
			return nil, fmt.Errorf("spotify adapter: audio features: %w", err)
		}
		for _, f := range body.AudioFeatures {
			if f != nil && f.ID != "" {
				result[f.ID] = *f
			}
		}
	}
	return result, nil
}
