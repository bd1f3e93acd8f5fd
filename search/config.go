package search

// Key names a match field, its relative weight, and the accessor that reads
// it from a record. Accessors replace field-name lookups so any record type
// can be indexed without reflection.
type Key[T any] struct {
	Name   string
	Weight float64
	Value  func(T) string
}

// NewKey builds a weighted key. Weights below 1 are treated as 1.
func NewKey[T any](name string, weight float64, value func(T) string) Key[T] {
	if weight < 1 {
		weight = 1
	}
	return Key[T]{Name: name, Weight: weight, Value: value}
}

// Config controls fuzzy index construction and matching.
//
// Threshold is the worst acceptable match score: 0 keeps exact matches only,
// 1 keeps everything. Distance is the furthest character offset at which a
// match still scores cleanly; it is inert while IgnoreLocation is set.
type Config[T any] struct {
	Keys               []Key[T]
	Threshold          float64
	MinMatchCharLength int
	ShouldSort         bool
	IgnoreLocation     bool
	Distance           int
}

// NewConfig returns a Config with the documented defaults: threshold 0.3,
// minimum match length 1, location ignored, distance 100, sorted results.
// Defaults are set here, never inferred at the point of use.
func NewConfig[T any](keys ...Key[T]) Config[T] {
	return Config[T]{
		Keys:               keys,
		Threshold:          0.3,
		MinMatchCharLength: 1,
		ShouldSort:         true,
		IgnoreLocation:     true,
		Distance:           100,
	}
}

// normalized coerces malformed values instead of rejecting them. The search
// package favors silent degradation; validation belongs to callers.
func (c Config[T]) normalized() Config[T] {
	if c.Threshold < 0 {
		c.Threshold = 0
	}
	if c.Threshold > 1 {
		c.Threshold = 1
	}
	if c.MinMatchCharLength < 1 {
		c.MinMatchCharLength = 1
	}
	if c.Distance <= 0 {
		c.Distance = 100
	}
	return c
}
