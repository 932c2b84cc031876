package domain

// Playlist is the listener's reference for recommendations.
type Playlist struct {
	ID     string
	Name   string
	Tracks []Track
}

// Analyze averages the playlist's track features into a single vector.
// Tracks are expected to be the sampled subset the provider returned.
func (p Playlist) Analyze() (AudioFeatureVector, error) {
	vectors := make([]AudioFeatureVector, 0, len(p.Tracks))
	for _, t := range p.Tracks {
		vectors = append(vectors, t.Features)
	}

	avg, ok := AverageFeatures(vectors)
	if !ok {
		return AudioFeatureVector{}, &InvalidVectorError{Reason: "playlist has no analysed tracks"}
	}
	if err := avg.Validate(); err != nil {
		return AudioFeatureVector{}, err
	}
	return avg, nil
}
