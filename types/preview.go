package types

import "time"

// UnknownValue is the sentinel for metadata fields that could not be resolved.
const UnknownValue = "Unknown"

// EditField marks which draft field the admin's next text message edits.
type EditField string

const (
	EditNone    EditField = ""
	EditPoster  EditField = "poster"
	EditDetails EditField = "details"
	EditCaption EditField = "caption"
)

// MetaInfo is the result of a metadata enrichment lookup.
type MetaInfo struct {
	Title   string
	Year    string
	Poster  string
	Rating  string
	Genre   string
	Runtime string
	Plot    string
}

// PreviewSession is one draft promotional post, owned by a single admin.
type PreviewSession struct {
	ID      string
	AdminID int64

	Query    string
	LinkID   string
	DeepLink string

	Title   string
	Year    string
	Rating  string
	Genre   string
	Runtime string

	Poster  string
	Caption string

	// PreviewMsgID is the message currently displaying the draft, 0 if none.
	PreviewMsgID   int
	PreviewChatID  int64
	PreviewIsPhoto bool

	CreatedAt time.Time
}

// EditState records that an admin's next private text message is the payload
// for a pending field edit. At most one per admin.
type EditState struct {
	SessionID string
	Field     EditField
	Since     time.Time
}
