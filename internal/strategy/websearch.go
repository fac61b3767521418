package strategy

import (
	"context"
	"net/url"
	"sort"
	"strings"

	"github.com/pitchside/playerfacts/internal/model"
)

// WebSearch is the broad fallback: a DuckDuckGo HTML search for the
// player plus "high school". Lowest precision among the school
// strategies, so it runs after the targeted ones.
type WebSearch struct {
	client Client
	domain DomainFunc
}

// NewWebSearch creates the search-engine fallback strategy.
func NewWebSearch(client Client, domain DomainFunc) *WebSearch {
	return &WebSearch{client: client, domain: domain}
}

func (s *WebSearch) Name() string       { return "highschool_websearch" }
func (s *WebSearch) SourceName() string { return "Web Search" }

func (s *WebSearch) Supports(ft model.FactType) bool { return ft == model.FactSchool }

const maxSearchResults = 5

func (s *WebSearch) Fetch(ctx context.Context, p model.Player) ([]Document, error) {
	query := p.FullName() + " " + p.Club + " \"high school\""
	searchURL := "https://html.duckduckgo.com/html/?q=" + url.QueryEscape(query)

	links, err := s.client.FindLinks(ctx, searchURL, "uddg=")
	if err != nil {
		return nil, err
	}

	var results []string
	seen := make(map[string]bool)
	for _, link := range links {
		target := unwrapRedirect(link.Href)
		if target == "" || seen[target] {
			continue
		}
		seen[target] = true
		results = append(results, target)
	}

	// Club and league pages outrank random results.
	clubDomain := s.domain(p.Club)
	sort.SliceStable(results, func(i, j int) bool {
		return searchResultRank(results[i], clubDomain) < searchResultRank(results[j], clubDomain)
	})

	var docs []Document
	for _, target := range results {
		if len(docs) >= maxSearchResults {
			break
		}
		text, err := s.client.Render(ctx, target)
		if err != nil {
			continue
		}
		docs = append(docs, Document{Text: text, URL: target})
	}
	return docs, nil
}

func searchResultRank(target, clubDomain string) int {
	switch {
	case clubDomain != "" && strings.Contains(target, clubDomain):
		return 0
	case strings.Contains(target, "mlssoccer.com"):
		return 1
	default:
		return 2
	}
}

// unwrapRedirect extracts the destination from a DuckDuckGo redirect
// href ("//duckduckgo.com/l/?uddg=https%3A%2F%2F...").
func unwrapRedirect(href string) string {
	i := strings.Index(href, "uddg=")
	if i < 0 {
		return ""
	}
	target := href[i+len("uddg="):]
	if j := strings.IndexByte(target, '&'); j >= 0 {
		target = target[:j]
	}
	decoded, err := url.QueryUnescape(target)
	if err != nil {
		return ""
	}
	if !strings.HasPrefix(decoded, "http") {
		return ""
	}
	return decoded
}
