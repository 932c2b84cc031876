package domain

// Track represents a musical track in the domain layer.
type Track struct {
	ID       string
	Title    string
	Artist   string
	Features AudioFeatureVector
}
