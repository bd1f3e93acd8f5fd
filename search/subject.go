package search

import (
	"sort"
	"strings"

	"github.com/atarsearch/atarsearch/core"
)

// DefaultSubjectLimit caps subject results when the caller gives no limit.
const DefaultSubjectLimit = 50

// Subject scoring. Unlike course word tiers these are additive: a subject
// can collect the alias bonus per matching target on top of direct name and
// code bonuses, since several alias targets may point at the same subject.
const (
	aliasExactScore  = 100
	aliasPrefixScore = 50
	nameExactScore   = 80
	namePrefixScore  = 40
	codeExactScore   = 70
	codePrefixScore  = 30
)

// SubjectSearchOptions configures SearchSubjects.
type SubjectSearchOptions struct {
	Query   string
	Aliases map[string][]string
	Limit   int
}

// NormalisedQuery is a trimmed, lowercased query plus the canonical subject
// names it resolved to through the alias table.
type NormalisedQuery struct {
	Query        string
	AliasTargets []string
}

// NormaliseSubjectQuery lowercases and trims the query, then collects the
// targets of every alias whose key equals the query or prefixes it as a
// whole word. Targets accumulate across matching aliases; duplicates stay.
func NormaliseSubjectQuery(query string, aliases map[string][]string) NormalisedQuery {
	norm := NormalisedQuery{Query: normalizeQuery(query)}
	if norm.Query == "" || len(aliases) == 0 {
		return norm
	}

	keys := make([]string, 0, len(aliases))
	for key := range aliases {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		k := strings.ToLower(key)
		if norm.Query == k || strings.HasPrefix(norm.Query, k+" ") {
			norm.AliasTargets = append(norm.AliasTargets, aliases[key]...)
		}
	}
	return norm
}

// SearchSubjects ranks subjects for the query: alias and exact/prefix
// scoring first, fuzzy matching for everything that scored zero, exact tier
// always ahead of the fuzzy tier.
func SearchSubjects(subjects []*core.Subject, opts SubjectSearchOptions) []*core.Subject {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultSubjectLimit
	}

	norm := NormaliseSubjectQuery(opts.Query, opts.Aliases)
	if norm.Query == "" {
		if len(subjects) > limit {
			return subjects[:limit]
		}
		return subjects
	}

	type scoredSubject struct {
		subject  *core.Subject
		priority int
	}

	exact := make([]scoredSubject, 0, len(subjects))
	residual := make([]*core.Subject, 0, len(subjects))
	for _, subject := range subjects {
		if priority := subjectPriority(subject, norm); priority > 0 {
			exact = append(exact, scoredSubject{subject: subject, priority: priority})
		} else {
			residual = append(residual, subject)
		}
	}

	sort.SliceStable(exact, func(i, j int) bool {
		return exact[i].priority > exact[j].priority
	})

	results := make([]*core.Subject, 0, len(subjects))
	for _, s := range exact {
		results = append(results, s.subject)
	}
	results = append(results, FuzzySearch(residual, norm.Query, subjectFuzzyConfig())...)

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// subjectPriority sums the additive score components for one subject.
func subjectPriority(subject *core.Subject, norm NormalisedQuery) int {
	name := strings.ToLower(subject.Name)
	code := strings.ToLower(subject.Code)

	priority := 0
	for _, target := range norm.AliasTargets {
		t := strings.ToLower(target)
		switch {
		case name == t:
			priority += aliasExactScore
		case strings.HasPrefix(name, t):
			priority += aliasPrefixScore
		}
	}

	switch {
	case name == norm.Query:
		priority += nameExactScore
	case strings.HasPrefix(name, norm.Query):
		priority += namePrefixScore
	}

	switch {
	case code == norm.Query:
		priority += codeExactScore
	case strings.HasPrefix(code, norm.Query):
		priority += codePrefixScore
	}

	return priority
}

func subjectFuzzyConfig() Config[*core.Subject] {
	cfg := NewConfig(
		NewKey("name", 2, func(s *core.Subject) string { return s.Name }),
		NewKey("code", 1, func(s *core.Subject) string { return s.Code }),
	)
	cfg.MinMatchCharLength = 2
	return cfg
}
