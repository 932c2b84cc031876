package domain

import (
	"math"
	"slices"
)

// FeatureCount is the number of components in an AudioFeatureVector.
const FeatureCount = 7

// FeatureNames lists the audio features in the order every vector is compared.
var FeatureNames = [FeatureCount]string{
	"danceability",
	"energy",
	"speechiness",
	"acousticness",
	"instrumentalness",
	"liveness",
	"valence",
}

// AudioFeatureVector describes the sonic characteristics of a track, a
// playlist or an artist. Values are nominally in [0, 1].
type AudioFeatureVector struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Speechiness      float64 `json:"speechiness"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Valence          float64 `json:"valence"`
}

// Values returns the features in FeatureNames order.
func (v AudioFeatureVector) Values() [FeatureCount]float64 {
	return [FeatureCount]float64{
		v.Danceability,
		v.Energy,
		v.Speechiness,
		v.Acousticness,
		v.Instrumentalness,
		v.Liveness,
		v.Valence,
	}
}

// VectorFromValues builds a vector from values in FeatureNames order.
func VectorFromValues(vals [FeatureCount]float64) AudioFeatureVector {
	return AudioFeatureVector{
		Danceability:     vals[0],
		Energy:           vals[1],
		Speechiness:      vals[2],
		Acousticness:     vals[3],
		Instrumentalness: vals[4],
		Liveness:         vals[5],
		Valence:          vals[6],
	}
}

// Magnitude returns the euclidean norm of the vector.
func (v AudioFeatureVector) Magnitude() float64 {
	var sum float64
	for _, x := range v.Values() {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Validate reports an InvalidVectorError when the vector cannot take part
// in a cosine comparison.
func (v AudioFeatureVector) Validate() error {
	for i, x := range v.Values() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return &InvalidVectorError{Reason: "non-finite " + FeatureNames[i]}
		}
	}
	if v.Magnitude() == 0 {
		return &InvalidVectorError{Reason: "zero magnitude"}
	}
	return nil
}

// Finite reports whether every component is a finite number.
func (v AudioFeatureVector) Finite() bool {
	for _, x := range v.Values() {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// AverageFeatures averages vectors component-wise. It returns false when
// there is nothing to average.
func AverageFeatures(vectors []AudioFeatureVector) (AudioFeatureVector, bool) {
	if len(vectors) == 0 {
		return AudioFeatureVector{}, false
	}

	var sum [FeatureCount]float64
	for _, v := range vectors {
		for i, x := range v.Values() {
			sum[i] += x
		}
	}
	n := float64(len(vectors))
	for i := range sum {
		sum[i] /= n
	}
	return VectorFromValues(sum), true
}

// ArtistProfiles maps an artist name to its averaged feature vector.
// Keys are matched by exact string comparison.
type ArtistProfiles map[string]AudioFeatureVector

// Artists returns the profiled artist names in lexical order.
func (p ArtistProfiles) Artists() []string {
	names := make([]string, 0, len(p))
	for name := range p {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
