package domain

// Section is one date group of photos, e.g. "Momento Março de 2024".
// Built once per load and not mutated afterwards; Items share the pointers
// held by the gallery, so like counts are observed through them.
type Section struct {
	Label string
	Items []*MediaItem
}
