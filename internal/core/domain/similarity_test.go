package domain

import (
	"errors"
	"math"
	"testing"
)

var sampleVectors = []AudioFeatureVector{
	{Danceability: 0.8, Energy: 0.9, Speechiness: 0.05, Acousticness: 0.02, Instrumentalness: 0.6, Liveness: 0.1, Valence: 0.7},
	{Danceability: 0.3, Energy: 0.2, Speechiness: 0.04, Acousticness: 0.9, Instrumentalness: 0.0, Liveness: 0.3, Valence: 0.2},
	{Danceability: 0.5, Energy: 0.5, Speechiness: 0.5, Acousticness: 0.5, Instrumentalness: 0.5, Liveness: 0.5, Valence: 0.5},
	{Danceability: -0.4, Energy: 0.1, Speechiness: -0.2, Acousticness: 0.3, Instrumentalness: -0.9, Liveness: 0.0, Valence: 0.6},
	{Energy: 1},
}

func TestCosine_Symmetry(t *testing.T) {
	for i, a := range sampleVectors {
		for j, b := range sampleVectors {
			ab, err := Cosine(a, b)
			if err != nil {
				t.Fatalf("Cosine(%d,%d): unexpected error: %v", i, j, err)
			}
			ba, err := Cosine(b, a)
			if err != nil {
				t.Fatalf("Cosine(%d,%d): unexpected error: %v", j, i, err)
			}
			if math.Abs(ab-ba) > 1e-12 {
				t.Fatalf("asymmetric score for %d,%d: %v vs %v", i, j, ab, ba)
			}
			if ab < -1 || ab > 1 {
				t.Fatalf("score out of range for %d,%d: %v", i, j, ab)
			}
		}
	}
}

func TestCosine_SelfSimilarity(t *testing.T) {
	for i, v := range sampleVectors {
		got, err := Cosine(v, v)
		if err != nil {
			t.Fatalf("vector %d: unexpected error: %v", i, err)
		}
		if math.Abs(got-1.0) > 1e-9 {
			t.Fatalf("vector %d: self similarity %v, want 1", i, got)
		}
	}
}

func TestCosine_KnownValues(t *testing.T) {
	tests := []struct {
		name string
		a    AudioFeatureVector
		b    AudioFeatureVector
		want float64
	}{
		{
			name: "orthogonal",
			a:    AudioFeatureVector{Danceability: 1},
			b:    AudioFeatureVector{Valence: 1},
			want: 0,
		},
		{
			name: "opposite",
			a:    AudioFeatureVector{Energy: 0.5},
			b:    AudioFeatureVector{Energy: -2},
			want: -1,
		},
		{
			name: "scale invariant",
			a:    AudioFeatureVector{Danceability: 0.2, Energy: 0.4},
			b:    AudioFeatureVector{Danceability: 0.4, Energy: 0.8},
			want: 1,
		},
		{
			name: "forty five degrees",
			a:    AudioFeatureVector{Liveness: 1},
			b:    AudioFeatureVector{Liveness: 1, Speechiness: 1},
			want: 1 / math.Sqrt2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Cosine = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosine_InvalidVector(t *testing.T) {
	valid := sampleVectors[0]
	tests := []struct {
		name string
		a    AudioFeatureVector
		b    AudioFeatureVector
	}{
		{name: "zero left", a: AudioFeatureVector{}, b: valid},
		{name: "zero right", a: valid, b: AudioFeatureVector{}},
		{name: "both zero", a: AudioFeatureVector{}, b: AudioFeatureVector{}},
		{name: "nan component", a: AudioFeatureVector{Energy: math.NaN()}, b: valid},
		{name: "infinite component", a: valid, b: AudioFeatureVector{Valence: math.Inf(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Cosine(tt.a, tt.b)
			if !errors.Is(err, ErrInvalidVector) {
				t.Fatalf("expected ErrInvalidVector, got %v", err)
			}
			var vecErr *InvalidVectorError
			if !errors.As(err, &vecErr) {
				t.Fatalf("expected *InvalidVectorError, got %T", err)
			}
		})
	}
}

func TestAverageFeatures(t *testing.T) {
	if _, ok := AverageFeatures(nil); ok {
		t.Fatalf("expected no average for empty input")
	}

	got, ok := AverageFeatures([]AudioFeatureVector{
		{Danceability: 0.2, Valence: 1},
		{Danceability: 0.4, Valence: 0},
	})
	if !ok {
		t.Fatalf("expected average")
	}
	want := AudioFeatureVector{Danceability: 0.3, Valence: 0.5}
	if !featuresEqual(got, want, 1e-12) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
}

func TestVectorFromValues_RoundTripsOrder(t *testing.T) {
	v := sampleVectors[0]
	if got := VectorFromValues(v.Values()); got != v {
		t.Fatalf("expected %+v, got %+v", v, got)
	}
	if v.Values()[2] != v.Speechiness || FeatureNames[2] != "speechiness" {
		t.Fatalf("feature order changed: %v", FeatureNames)
	}
}
