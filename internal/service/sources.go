package service

import "github.com/9mit/Youtube-Intelligence/internal/model"

// dedupSources removes duplicate citations by URI, keeping the first
// occurrence. Always returns a non-nil slice so source lists encode as
// [] rather than null.
func dedupSources(sources []model.Source) []model.Source {
	unique := []model.Source{}
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if seen[s.URI] {
			continue
		}
		seen[s.URI] = true
		unique = append(unique, s)
	}
	return unique
}
