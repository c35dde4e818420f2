package domain

import (
	"strconv"
	"strings"
)

const (
	DefaultSearchLimit = 5
	MaxSearchLimit     = 100
)

// SearchQuery selects artwork ids. Every keyword must occur in the title or
// the creator (case-insensitive) and every tag must be present. Results are
// ordered by id.
type SearchQuery struct {
	Keywords []string
	Tags     []string
	Limit    int
	Offset   int
}

func NewSearchQuery(keywords, tags, limit, offset string) (SearchQuery, error) {
	q := SearchQuery{
		Keywords: SplitList(keywords),
		Tags:     Dedupe(SplitList(tags)),
		Limit:    DefaultSearchLimit,
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 || n > MaxSearchLimit {
			return SearchQuery{}, Invalid("Limit must be a number between 1 and 100.")
		}
		q.Limit = n
	}
	if offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return SearchQuery{}, Invalid("Offset must be a non-negative number.")
		}
		q.Offset = n
	}
	return q, nil
}

func (q SearchQuery) Matches(a *Artwork) bool {
	title := strings.ToLower(a.Title)
	creator := strings.ToLower(a.Creator)
	for _, kw := range q.Keywords {
		kw = strings.ToLower(kw)
		if !strings.Contains(title, kw) && !strings.Contains(creator, kw) {
			return false
		}
	}
	for _, t := range q.Tags {
		if !a.HasTag(t) {
			return false
		}
	}
	return true
}
