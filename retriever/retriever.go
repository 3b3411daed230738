// Package retriever does best-effort keyword matching of a visitor query
// against the recipe catalog. It is a two-phase heuristic, not full-text
// search: an exact (case-insensitive) substring pass over name and tags,
// then a disjunctive token pass. Within a phase the first matching recipe
// wins; the iteration order is whatever the store returned, which is
// unspecified, not a guarantee.
package retriever

import (
	"context"
	"regexp"
	"strings"

	"github.com/levy-pm/co-moge-zjesc/models"
)

const (
	minTokenLen = 4
	maxTokens   = 6
)

// Word characters include Unicode letters so Polish queries tokenize the
// way visitors expect.
var tokenSplit = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// RecipeLister is the slice of the store the retriever needs.
type RecipeLister interface {
	List(ctx context.Context) ([]models.Recipe, error)
}

// Retriever looks up recipe context for the suggestion flow.
type Retriever struct {
	store RecipeLister
}

func New(store RecipeLister) *Retriever {
	return &Retriever{store: store}
}

// Find returns the first recipe matching the query, or nil when nothing
// matches. Store errors are returned so the caller can decide how loudly
// to degrade.
func (r *Retriever) Find(ctx context.Context, query string) (*models.Recipe, error) {
	recipes, err := r.store.List(ctx)
	if err != nil {
		return nil, err
	}
	return Match(recipes, query), nil
}

// Match runs the two-phase lookup over an already-loaded recipe list.
func Match(recipes []models.Recipe, query string) *models.Recipe {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return nil
	}

	// Phase 1: the whole query as a substring of name or tags.
	for i := range recipes {
		if containsFold(recipes[i].Name, trimmed) || containsFold(recipes[i].Tags, trimmed) {
			return &recipes[i]
		}
	}

	// Phase 2: any sufficiently long token as a substring.
	tokens := Tokenize(trimmed)
	if len(tokens) == 0 {
		return nil
	}
	for i := range recipes {
		for _, tok := range tokens {
			if containsFold(recipes[i].Name, tok) || containsFold(recipes[i].Tags, tok) {
				return &recipes[i]
			}
		}
	}

	return nil
}

// Tokenize splits a lowercased query on non-word characters, drops tokens
// shorter than four characters and caps the result at six tokens.
func Tokenize(query string) []string {
	parts := tokenSplit.Split(strings.ToLower(query), -1)
	tokens := make([]string, 0, maxTokens)
	for _, p := range parts {
		if len([]rune(p)) < minTokenLen {
			continue
		}
		tokens = append(tokens, p)
		if len(tokens) == maxTokens {
			break
		}
	}
	return tokens
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), needle)
}
