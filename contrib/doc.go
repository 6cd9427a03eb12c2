// Package contrib provides additional functionality and utilities
// for the Notion Go client.
//
// Everything in this package is intended to extend the core client with
// features that are not part of the core library, such as command line
// tools and testing utilities.
//
// Note that this package is outside of the backward compatibility guarantees
// provided by the core client. Changes to this package may introduce breaking
// changes without following semantic versioning.
//
// [github.com/nyoungstudios/notion.go/contrib/notiondump] exports any paginated
// listing (a database query, a search, block children or users) as JSON lines
// with a checksummed manifest. [github.com/nyoungstudios/notion.go/contrib/testenv]
// creates clients for tests, against the live API or an in-process fake.
package contrib
