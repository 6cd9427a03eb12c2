package pagination

import (
	"context"
	"fmt"

	"github.com/nyoungstudios/notion.go/pkg/constants"
	"github.com/nyoungstudios/notion.go/pkg/logger"
	"github.com/nyoungstudios/notion.go/pkg/models"
)

// FetchFunc retrieves one page of a listing. params carries every parameter
// of the listing, including start_cursor for every page after the first.
type FetchFunc func(ctx context.Context, params models.Params) (models.Page, error)

type state int

const (
	// the initial page has not been handed out yet
	stateInitial state = iota
	// the last page reported has_more = true
	stateHasMore
	stateDone
)

// Paginator walks the pages of one listing.
type Paginator struct {
	fetch  FetchFunc
	params models.Params
	logger logger.Logger

	state  state
	cursor models.Cursor
	page   models.Page

	// pending is the protocol error found in the page last handed out.
	// It is reported by the following Next.
	pending error
	err     error
	fetches int
}

type Option func(*Paginator)

func WithLogger(l logger.Logger) Option {
	return func(p *Paginator) {
		p.logger = logger.OrNop(l)
	}
}

// New returns a Paginator whose first element is initial.
//
// params must be the parameters that produced initial. They are copied, so the
// caller may reuse the map.
func New(fetch FetchFunc, initial models.Page, params models.Params, opts ...Option) *Paginator {
	p := &Paginator{
		fetch:  fetch,
		params: params.Clone(),
		logger: logger.Nop(),
		state:  stateInitial,
		page:   initial,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next advances to the next page and reports whether there is one.
//
// The first call always succeeds without a fetch. Later calls fetch one page
// while the previous page reported has_more = true. Once Next has returned
// false it keeps returning false and Err tells why.
func (p *Paginator) Next(ctx context.Context) bool {
	switch p.state {
	case stateInitial:
		p.settle()
		return true
	case stateDone:
		if p.pending != nil {
			p.err, p.pending = p.pending, nil
			p.page = models.Page{}
		}
		return false
	}

	if err := ctx.Err(); err != nil {
		p.fail(err)
		return false
	}

	p.logger.Debug("fetching next page", "cursor", string(p.cursor), "fetches", p.fetches)
	p.fetches++
	page, err := p.fetch(ctx, p.params.WithCursor(p.cursor))
	if err != nil {
		p.fail(err)
		return false
	}
	if page.IsZero() {
		p.fail(fmt.Errorf("%w: empty page", constants.ErrInvalidResponse))
		return false
	}

	p.page = page
	p.settle()
	return true
}

// settle moves to HAS_MORE or DONE according to the current page.
func (p *Paginator) settle() {
	hasMore, err := p.page.HasMore()
	if err != nil {
		p.state = stateDone
		p.pending = err
		return
	}
	if !hasMore {
		p.state = stateDone
		return
	}

	cursor, ok := p.page.NextCursor()
	if !ok {
		p.state = stateDone
		p.pending = &models.ProtocolError{Field: constants.KeyNextCursor, Err: constants.ErrMissingField}
		return
	}
	p.cursor = cursor
	p.state = stateHasMore
}

func (p *Paginator) fail(err error) {
	p.logger.Debug("pagination stopped", "error", err, "fetches", p.fetches)
	p.state = stateDone
	p.page = models.Page{}
	p.err = err
}

// Page returns the page produced by the last successful Next.
func (p *Paginator) Page() models.Page {
	return p.page
}

// Err returns the error that ended the walk, or nil if the walk ended because
// the server reported no more pages.
func (p *Paginator) Err() error {
	return p.err
}

// More reports whether a further Next could produce a page.
func (p *Paginator) More() bool {
	return p.state != stateDone || p.pending != nil
}

// Fetches returns how many fetches the paginator has issued.
// The initial page is not counted.
func (p *Paginator) Fetches() int {
	return p.fetches
}
