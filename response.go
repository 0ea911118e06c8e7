package utapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// errorEnvelope is the error body shape the service uses across endpoints.
// Which of error/message carries the text varies by endpoint, so both are read.
type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// decodeError maps a non-2xx response to a *RemoteError when the body is JSON,
// falling back to *TransportError when it is not. The body is consumed and
// closed either way.
func decodeError(resp *http.Response) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Status: resp.StatusCode, Err: err}
	}

	var env errorEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &TransportError{Status: resp.StatusCode, Body: raw}
	}

	msg := env.Error
	if msg == "" {
		msg = env.Message
	}
	if msg == "" {
		// JSON, but not the documented envelope. Surface the body verbatim.
		msg = string(bytes.TrimSpace(raw))
	}
	return &RemoteError{
		Status:  resp.StatusCode,
		Code:    env.Code,
		Message: msg,
		Raw:     raw,
	}
}

// decodeBody reads a success response's body into the endpoint wire struct out.
// The body is consumed and closed. A body that is empty or not JSON yields
// ErrMalformedResponse; required-field checks live on each wire struct.
func decodeBody(op string, resp *http.Response, out any) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Status: resp.StatusCode, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return malformed(op, "empty body")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: decode body: %v: %w", op, err, ErrMalformedResponse)
	}
	return nil
}

// malformed labels a schema violation with the operation and the field or
// detail that failed.
func malformed(op, detail string) error {
	return fmt.Errorf("%s: %s: %w", op, detail, ErrMalformedResponse)
}

// Wire structs decode with pointers so a missing required field is
// distinguishable from a zero value. Each result method enforces its
// endpoint's schema and converts to the public shape.

type deleteFileWire struct {
	Success      *bool `json:"success"`
	DeletedCount *int  `json:"deletedCount"`
}

func (w *deleteFileWire) result(op string) (*DeleteFileResponse, error) {
	if w.Success == nil {
		return nil, malformed(op, "missing field success")
	}
	out := &DeleteFileResponse{Success: *w.Success}
	if w.DeletedCount != nil {
		out.DeletedCount = *w.DeletedCount
	}
	return out, nil
}

type renameFilesWire struct {
	Success      *bool `json:"success"`
	RenamedCount *int  `json:"renamedCount"`
}

func (w *renameFilesWire) result(op string) (*RenameFilesResponse, error) {
	if w.Success == nil {
		return nil, malformed(op, "missing field success")
	}
	out := &RenameFilesResponse{Success: *w.Success}
	if w.RenamedCount != nil {
		out.RenamedCount = *w.RenamedCount
	}
	return out, nil
}

type fileURLWire struct {
	Key *string `json:"key"`
	URL *string `json:"url"`
}

type fileURLsWire struct {
	Data *[]fileURLWire `json:"data"`
}

func (w *fileURLsWire) result(op string) (*FileURLsResponse, error) {
	if w.Data == nil {
		return nil, malformed(op, "missing field data")
	}
	out := &FileURLsResponse{Data: make([]FileURL, 0, len(*w.Data))}
	for i, d := range *w.Data {
		if d.Key == nil || d.URL == nil {
			return nil, malformed(op, fmt.Sprintf("entry %d missing key or url", i))
		}
		out.Data = append(out.Data, FileURL{Key: *d.Key, URL: *d.URL})
	}
	return out, nil
}

type fileRecordWire struct {
	Key    *string     `json:"key"`
	ID     *string     `json:"id"`
	Status *FileStatus `json:"status"`
	Name   string      `json:"name"`
	Size   int64       `json:"size"`
	URL    string      `json:"url"`
}

type listFilesWire struct {
	Files   *[]fileRecordWire `json:"files"`
	HasMore bool              `json:"hasMore"`
}

func (w *listFilesWire) result(op string) (*ListFilesResponse, error) {
	if w.Files == nil {
		return nil, malformed(op, "missing field files")
	}
	out := &ListFilesResponse{
		Files:   make([]FileRecord, 0, len(*w.Files)),
		HasMore: w.HasMore,
	}
	for i, f := range *w.Files {
		if f.Key == nil || f.ID == nil || f.Status == nil {
			return nil, malformed(op, fmt.Sprintf("file %d missing key, id, or status", i))
		}
		out.Files = append(out.Files, FileRecord{
			Key:    *f.Key,
			ID:     *f.ID,
			Status: *f.Status,
			Name:   f.Name,
			Size:   f.Size,
			URL:    f.URL,
		})
	}
	return out, nil
}

type usageInfoWire struct {
	TotalBytes       *int64   `json:"total_bytes"`
	TotalReadable    *string  `json:"total_readable"`
	AppTotalBytes    *float64 `json:"app_total_bytes"`
	AppTotalReadable *string  `json:"app_total_readable"`
	FilesUploaded    *int     `json:"files_uploaded"`
	LimitBytes       *float64 `json:"limit_bytes"`
	LimitReadable    *string  `json:"limit_readable"`
}

func (w *usageInfoWire) result(op string) (*UsageInfo, error) {
	switch {
	case w.TotalBytes == nil:
		return nil, malformed(op, "missing field total_bytes")
	case w.TotalReadable == nil:
		return nil, malformed(op, "missing field total_readable")
	case w.AppTotalBytes == nil:
		return nil, malformed(op, "missing field app_total_bytes")
	case w.AppTotalReadable == nil:
		return nil, malformed(op, "missing field app_total_readable")
	case w.FilesUploaded == nil:
		return nil, malformed(op, "missing field files_uploaded")
	case w.LimitBytes == nil:
		return nil, malformed(op, "missing field limit_bytes")
	case w.LimitReadable == nil:
		return nil, malformed(op, "missing field limit_readable")
	}
	return &UsageInfo{
		TotalBytes:       *w.TotalBytes,
		TotalReadable:    *w.TotalReadable,
		AppTotalBytes:    *w.AppTotalBytes,
		AppTotalReadable: *w.AppTotalReadable,
		FilesUploaded:    *w.FilesUploaded,
		LimitBytes:       *w.LimitBytes,
		LimitReadable:    *w.LimitReadable,
	}, nil
}

type presignedURLWire struct {
	URL *string `json:"url"`
}

func (w *presignedURLWire) result(op string) (*PresignedURL, error) {
	if w.URL == nil {
		return nil, malformed(op, "missing field url")
	}
	return &PresignedURL{
		URL:       *w.URL,
		ExpiresAt: parseURLExpiry(*w.URL),
	}, nil
}

// parseURLExpiry reads the expiry the service embedded in a presigned URL as
// its "expires" query parameter, in epoch milliseconds. URLs without one, or
// with one that does not parse, yield the zero time.
func parseURLExpiry(raw string) time.Time {
	u, err := url.Parse(raw)
	if err != nil {
		return time.Time{}
	}
	v := u.Query().Get("expires")
	if v == "" {
		return time.Time{}
	}
	ms, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

type uploadTicketWire struct {
	Key          *string                    `json:"key"`
	FileURL      *string                    `json:"fileUrl"`
	PresignedURL string                     `json:"presignedUrl"`
	URL          string                     `json:"url"`
	URLs         []string                   `json:"urls"`
	ChunkSize    int64                      `json:"chunk_size"`
	Fields       map[string]json.RawMessage `json:"fields"`
}

// ticketFields flattens a ticket's form fields to strings. Field values are
// arbitrary JSON: strings are unquoted, null becomes the empty string, and any
// other value keeps its raw JSON text.
func ticketFields(raw map[string]json.RawMessage) map[string]string {
	if raw == nil {
		return nil
	}
	fields := make(map[string]string, len(raw))
	for name, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err == nil {
			fields[name] = s
			continue
		}
		fields[name] = string(value)
	}
	return fields
}

type uploadFilesWire struct {
	Data *[]uploadTicketWire `json:"data"`
}

func (w *uploadFilesWire) result(op string) (*UploadFilesResponse, error) {
	if w.Data == nil {
		return nil, malformed(op, "missing field data")
	}
	out := &UploadFilesResponse{Data: make([]UploadTicket, 0, len(*w.Data))}
	for i, t := range *w.Data {
		if t.Key == nil || t.FileURL == nil {
			return nil, malformed(op, fmt.Sprintf("ticket %d missing key or fileUrl", i))
		}
		out.Data = append(out.Data, UploadTicket{
			Key:          *t.Key,
			FileURL:      *t.FileURL,
			PresignedURL: t.PresignedURL,
			URL:          t.URL,
			URLs:         t.URLs,
			ChunkSize:    t.ChunkSize,
			Fields:       ticketFields(t.Fields),
		})
	}
	return out, nil
}

type pollUploadWire struct {
	Status *string `json:"status"`
}

func (w *pollUploadWire) result(op string) (*PollUploadResponse, error) {
	if w.Status == nil {
		return nil, malformed(op, "missing field status")
	}
	return &PollUploadResponse{Status: *w.Status}, nil
}
