package utapi

import "time"

// FileStatus is the upload lifecycle state the service reports for a file.
type FileStatus string

const (
	// StatusDeletionPending - the file is queued for deletion but still listed
	StatusDeletionPending = FileStatus("DeletionPending")

	// StatusFailed - the upload was abandoned or rejected
	StatusFailed = FileStatus("Failed")

	// StatusUploaded - the file is fully ingested and servable
	StatusUploaded = FileStatus("Uploaded")

	// StatusUploading - the upload is still in flight
	StatusUploading = FileStatus("Uploading")
)

// FileRecord is the service's metadata for one stored file. Key, ID, and Status
// are always present. Name, Size, and URL appear only when the service includes
// them, and are zero otherwise.
type FileRecord struct {
	Key    string     `json:"key"`
	ID     string     `json:"id"`
	Status FileStatus `json:"status"`
	Name   string     `json:"name,omitempty"`
	Size   int64      `json:"size,omitempty"`
	URL    string     `json:"url,omitempty"`
}

// ListFilesOpts sets the pagination window for ListFiles. Nil fields are left
// out of the request entirely so the server-side defaults apply.
type ListFilesOpts struct {
	// Limit is the maximum number of files to return. Must be positive when set.
	Limit *int `json:"limit,omitempty"`

	// Offset is the number of files to skip from the start of the listing. Must
	// be non-negative when set.
	Offset *int `json:"offset,omitempty"`
}

// ListFilesResponse is one page of stored files, in the order the service
// returned them.
type ListFilesResponse struct {
	Files []FileRecord `json:"files"`

	// HasMore reports whether another page exists beyond this window, when the
	// service includes that hint.
	HasMore bool `json:"hasMore,omitempty"`
}

// DeleteFileResponse is the aggregate outcome of a deleteFile call. Success is
// true even when some keys were already gone; deletion is idempotent.
type DeleteFileResponse struct {
	Success bool `json:"success"`

	// DeletedCount is how many files the service actually removed, when it says.
	DeletedCount int `json:"deletedCount,omitempty"`
}

// FileURL pairs a file key with its public URL.
type FileURL struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// FileURLsResponse holds the URLs resolved by GetFileURLs, in request order.
// Keys the service could not resolve are absent rather than erroring the call.
type FileURLsResponse struct {
	Data []FileURL `json:"data"`
}

// ByKey returns the response as a key to URL map.
func (r *FileURLsResponse) ByKey() map[string]string {
	m := make(map[string]string, len(r.Data))
	for _, d := range r.Data {
		m[d.Key] = d.URL
	}
	return m
}

// FileRename maps one file key to its new human-readable name. Renaming changes
// display metadata only; the key and URL stay stable.
type FileRename struct {
	FileKey string `json:"file_key"`
	NewName string `json:"new_name"`
}

// RenameFilesResponse is the aggregate outcome of a renameFiles call.
type RenameFilesResponse struct {
	Success bool `json:"success"`

	// RenamedCount is how many files the service actually renamed, when it says.
	RenamedCount int `json:"renamedCount,omitempty"`
}

// UsageInfo is a read-only snapshot of account storage usage. Byte counts and
// their human-readable renderings both come from the service; nothing is
// derived locally.
type UsageInfo struct {
	TotalBytes       int64   `json:"total_bytes"`
	TotalReadable    string  `json:"total_readable"`
	AppTotalBytes    float64 `json:"app_total_bytes"`
	AppTotalReadable string  `json:"app_total_readable"`
	FilesUploaded    int     `json:"files_uploaded"`
	LimitBytes       float64 `json:"limit_bytes"`
	LimitReadable    string  `json:"limit_readable"`
}

// MaxExpireSeconds is the longest lifetime the service accepts for a presigned
// URL: seven days, in seconds.
const MaxExpireSeconds int64 = 604800

// PresignedURLOpts describes the presigned URL being requested. Only FileKey is
// required.
type PresignedURLOpts struct {
	FileKey string `json:"file_key"`

	// ExpiresIn is the requested URL lifetime in seconds, at most
	// MaxExpireSeconds. Nil lets the service pick its default.
	ExpiresIn *int64 `json:"expires_in,omitempty"`

	// Transform holds service-side transformation parameters (resizing and the
	// like), passed through verbatim.
	Transform map[string]string `json:"transform,omitempty"`
}

// PresignedURL is a time-limited URL granting direct access to a file without
// per-request authentication.
type PresignedURL struct {
	URL string

	// ExpiresAt is the expiry the service embedded in the URL (its "expires"
	// query parameter, epoch milliseconds). Zero when the URL carries none. It
	// is read from the URL, never computed locally.
	ExpiresAt time.Time
}

// ContentDisposition selects how browsers are told to treat a served file.
type ContentDisposition string

// ACL selects who may fetch an uploaded file directly.
type ACL string

const (
	// DispositionInline - render in the browser when possible
	DispositionInline = ContentDisposition("inline")

	// DispositionAttachment - always download
	DispositionAttachment = ContentDisposition("attachment")

	// ACLPublicRead - anyone with the URL may fetch the file
	ACLPublicRead = ACL("public-read")

	// ACLPrivate - access requires a presigned URL
	ACLPrivate = ACL("private")
)

// UploadFileInfo describes one file an upload session is opened for. Type is a
// MIME type and falls back to application/octet-stream when blank.
type UploadFileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
}

// UploadFilesOpts carries the optional settings of an upload session. The zero
// value means empty metadata, inline disposition, and public-read access.
type UploadFilesOpts struct {
	Metadata           map[string]string
	ContentDisposition ContentDisposition
	ACL                ACL
}

// UploadTicket is one presigned upload slot issued by the service. Single-shot
// uploads carry PresignedURL (or URL with form Fields); multipart sessions
// carry URLs, one per ChunkSize-sized part. Moving the bytes is the caller's
// job; the client never touches file contents.
type UploadTicket struct {
	Key          string            `json:"key"`
	FileURL      string            `json:"fileUrl"`
	PresignedURL string            `json:"presignedUrl,omitempty"`
	URL          string            `json:"url,omitempty"`
	URLs         []string          `json:"urls,omitempty"`
	ChunkSize    int64             `json:"chunk_size,omitempty"`
	Fields       map[string]string `json:"fields,omitempty"`
}

// UploadFilesResponse lists the tickets issued for an upload session, ordered
// like the request's files.
type UploadFilesResponse struct {
	Data []UploadTicket `json:"data"`
}

// PollUploadResponse is the service-side state of one upload.
type PollUploadResponse struct {
	Status string `json:"status"`
}

// Done reports whether the service has marked the upload complete.
func (r *PollUploadResponse) Done() bool { return r.Status == "done" }
