package pagination

import (
	"context"
	"iter"

	"github.com/goccy/go-json"

	"github.com/nyoungstudios/notion.go/pkg/models"
)

// All returns the remaining pages as a sequence. A failure is yielded once as
// (zero Page, err) and ends the sequence. Breaking out of the loop stops
// fetching.
//
// The sequence shares the paginator's position: it can be ranged over once.
func (p *Paginator) All(ctx context.Context) iter.Seq2[models.Page, error] {
	return func(yield func(models.Page, error) bool) {
		for p.Next(ctx) {
			if !yield(p.Page(), nil) {
				return
			}
		}
		if err := p.Err(); err != nil {
			yield(models.Page{}, err)
		}
	}
}

// Results returns the result objects of the remaining pages, in order.
// Pages are still fetched one at a time, when the results of the previous
// page have been consumed.
func (p *Paginator) Results(ctx context.Context) iter.Seq2[json.RawMessage, error] {
	return func(yield func(json.RawMessage, error) bool) {
		for page, err := range p.All(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}

			results, err := page.Results()
			if err != nil {
				yield(nil, err)
				return
			}
			for _, result := range results {
				if !yield(result, nil) {
					return
				}
			}
		}
	}
}

// Collect drains p. On failure it returns the pages produced before the
// failure together with the error.
func Collect(ctx context.Context, p *Paginator) ([]models.Page, error) {
	var pages []models.Page
	for p.Next(ctx) {
		pages = append(pages, p.Page())
	}
	return pages, p.Err()
}
