package types

// FileRecord is one indexed media file. The numeric ID is what stream tokens
// decode to; FileRef is the Telegram file handle used to fetch the bytes.
type FileRecord struct {
	ID       int64  `db:"id"`
	FileName string `db:"file_name"`
	FileSize int64  `db:"file_size"`
	MimeType string `db:"mime_type"`
	FileRef  string `db:"file_ref"`
}
