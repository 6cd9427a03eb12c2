// Package pagination turns one already-fetched listing response into a lazy,
// forward-only sequence of every page of that listing.
//
// The Notion API reports continuation with `has_more` and `next_cursor` on
// every listing response, and accepts the cursor back as `start_cursor`.
// A [Paginator] holds the first page and a [FetchFunc] bound to the listing's
// method and endpoint. Each call to [Paginator.Next] after the first performs
// exactly one fetch, with the original params plus the previous page's cursor,
// and only when the caller asks for it:
//
//	p := pagination.New(fetch, first, params)
//	for p.Next(ctx) {
//		page := p.Page()
//		...
//	}
//	if err := p.Err(); err != nil {
//		...
//	}
//
// The same walk is available as a range-over-func sequence through
// [Paginator.All] and, flattened to individual result objects, through
// [Paginator.Results].
//
// A paginator is single-pass and is not safe for concurrent use. It starts no
// goroutines; when the caller stops pulling, nothing more is fetched.
package pagination
