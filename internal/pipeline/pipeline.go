// Package pipeline runs fetched documents through entity matching, issue
// tagging and per-entity aggregation in one pass.
package pipeline

import (
	"github.com/beaten-by-the-market/krx-radar/internal/aggregate"
	"github.com/beaten-by-the-market/krx-radar/internal/issue"
	"github.com/beaten-by-the-market/krx-radar/internal/match"
	"github.com/beaten-by-the-market/krx-radar/internal/models"
)

// TaggedDocument is a document annotated with the pipeline's verdicts.
type TaggedDocument struct {
	models.Document

	EntityNames    []string `json:"identified_entities"`
	TagMatched     bool     `json:"issue_matched"`
	MatchedClauses []string `json:"matched_keywords"`
}

// Result holds the entity-matched documents and the aggregate over all of
// them. Issue tags annotate each document but do not shrink Stats; use
// Filtered for the clause-only view.
type Result struct {
	Documents []TaggedDocument `json:"documents"`
	Stats     []aggregate.Row  `json:"stats"`
}

// Run matches every document against the roster, keeps those mentioning at
// least one listed company, tags each kept document with the clauses it
// satisfies, and aggregates sentiment counts per entity. Input order is
// preserved in Documents.
func Run(docs []models.Document, roster []models.Entity, clauses []issue.Clause) Result {
	ix := match.NewIndex(roster)
	tagger := issue.NewTagger(clauses)

	var (
		kept  []TaggedDocument
		items []aggregate.Item
	)
	for _, doc := range docs {
		m := ix.Match(doc)
		if !m.Matched {
			continue
		}

		tagged, matchedClauses := tagger.Tag(doc)
		kept = append(kept, TaggedDocument{
			Document:       doc,
			EntityNames:    m.Names,
			TagMatched:     tagged,
			MatchedClauses: matchedClauses,
		})
		items = append(items, aggregate.Item{
			Names:    m.Names,
			Polarity: doc.Polarity.Name,
		})
	}

	return Result{
		Documents: kept,
		Stats:     aggregate.PerEntity(items),
	}
}

// Filtered returns only the documents that satisfied at least one clause.
// With a vacuous tagger this is every document in the result.
func (r Result) Filtered() []TaggedDocument {
	var out []TaggedDocument
	for _, d := range r.Documents {
		if d.TagMatched {
			out = append(out, d)
		}
	}
	return out
}
