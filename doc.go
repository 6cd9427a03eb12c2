// The [notion] package is a client for the [Notion API] in the Go way.
//
// # Client
//
// Create a [Client] with an integration token. Every request carries the
// token as a bearer Authorization header together with the Notion-Version
// header fixed at construction time:
//
//	client, err := notion.New(os.Getenv("NOTION_TOKEN"))
//
// [ClientFromEnv] reads the token and the optional overrides from the
// environment and from a .env file.
//
// # Resources
//
// The API is grouped by resource the same way the service documents it:
// [Client.Databases], [Client.Pages], [Client.Blocks] (with
// [Blocks.Children]), [Client.Users] and [Client.Search]. Request parameters
// and responses are plain JSON; [models.Params] values are forwarded verbatim
// and [models.Page] keeps the response body exactly as the server sent it.
//
// # Pagination
//
// Operations that list or query return a [pagination.Paginator]. The first
// page is fetched before the method returns, so a failing first call is
// reported right away. Every further page is fetched only when the caller
// asks for it:
//
//	p, err := client.Databases.Query(ctx, databaseID, models.Params{"page_size": 50})
//	if err != nil {
//		return err
//	}
//	for result, err := range p.Results(ctx) {
//		if err != nil {
//			return err
//		}
//		...
//	}
//
// Single-entity operations (Retrieve, Create, Update, Delete, Me) return the
// decoded [models.Page] and never paginate.
//
// # Errors
//
// Failures are never retried. A non-success status is a
// [*models.ServerError] carrying the decoded Notion error body, a network
// failure is a [*models.TransportError], and a listing response without
// usable continuation fields is a [*models.ProtocolError].
//
// [Notion API]: https://developers.notion.com/reference/intro
package notion
