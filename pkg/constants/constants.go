package constants

const (
	DefaultBaseURL       = "https://api.notion.com"
	DefaultAPIVersion    = "v1"
	DefaultNotionVersion = "2021-08-16"
	UserAgent            = "notion.go"
)

// Wire keys the paginator treats as structurally meaningful. Every other key
// in a page or in request params is passed through unexamined.
const (
	KeyResults     = "results"
	KeyHasMore     = "has_more"
	KeyNextCursor  = "next_cursor"
	KeyStartCursor = "start_cursor"
	KeyPageSize    = "page_size"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderNotionVersion = "Notion-Version"
	HeaderContentType   = "Content-Type"
	HeaderUserAgent     = "User-Agent"
	ContentTypeJSON     = "application/json"
)
