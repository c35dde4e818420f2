package domain

import (
	"strings"
	"time"
)

type Artwork struct {
	ID        int64     `json:"id" bson:"id"`
	Title     string    `json:"title,omitempty" bson:"title,omitempty"`
	Creator   string    `json:"creator,omitempty" bson:"creator,omitempty"`
	Tags      []string  `json:"tags" bson:"tags"`
	Links     []string  `json:"links" bson:"links"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewArtwork builds a record ready for insertion. Tags are deduplicated and
// both sequences are always non-nil.
func NewArtwork(id int64, title, creator string, tags []string) *Artwork {
	return &Artwork{
		ID:        id,
		Title:     title,
		Creator:   creator,
		Tags:      Dedupe(tags),
		Links:     make([]string, 0),
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Clone returns a deep copy so callers never share slices with a store.
func (a *Artwork) Clone() *Artwork {
	c := *a
	c.Tags = append(make([]string, 0, len(a.Tags)), a.Tags...)
	c.Links = append(make([]string, 0, len(a.Links)), a.Links...)
	return &c
}

func (a *Artwork) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SplitList parses a comma separated query value. Blank items are dropped.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Dedupe keeps the first occurrence of every value.
func Dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
