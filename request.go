package utapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Endpoint paths, relative to Config.Host.
const (
	pathDeleteFile        = "/api/deleteFile"
	pathGetFileURL        = "/api/getFileUrl"
	pathListFiles         = "/api/listFiles"
	pathRenameFiles       = "/api/renameFiles"
	pathGetUsageInfo      = "/api/getUsageInfo"
	pathRequestFileAccess = "/api/requestFileAccess"
	pathUploadFiles       = "/api/uploadFiles"
	pathPollUpload        = "/api/pollUpload/"
)

// Custom header names are part of the wire contract and must go out with this
// exact casing, so they are assigned into the header map directly rather than
// through Header.Set, which would canonicalize them.
const (
	headerAPIKey  = "x-uploadthing-api-key"
	headerVersion = "x-uploadthing-version"
)

// fileKeysPayload is the request body shared by deleteFile and getFileUrl.
type fileKeysPayload struct {
	FileKeys []string `json:"file_keys"`
}

// renameFilesPayload is the request body for renameFiles.
type renameFilesPayload struct {
	Files []FileRename `json:"files"`
}

// uploadFilesPayload is the request body for uploadFiles. Metadata is always an
// object and ContentDisposition/ACL are always present, matching what the
// service expects.
type uploadFilesPayload struct {
	Files              []UploadFileInfo   `json:"files"`
	Metadata           map[string]string  `json:"metadata"`
	ContentDisposition ContentDisposition `json:"contentDisposition"`
	ACL                ACL                `json:"acl"`
}

// buildRequest assembles the authenticated POST every operation sends: JSON
// body, fixed header set, pathname joined onto the configured host. A nil
// payload is serialized as JSON null, which getUsageInfo relies on.
func buildRequest(ctx context.Context, config Config, pathname string, payload any) (*http.Request, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload for %s: %w", pathname, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, joinURL(config.Host, pathname), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	setHeaders(req, config)

	return req, nil
}

// buildGetRequest assembles the one GET in the contract, used by pollUpload.
// It authenticates with the API key header alone.
func buildGetRequest(ctx context.Context, config Config, pathname string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, joinURL(config.Host, pathname), nil)
	if err != nil {
		return nil, err
	}
	req.Header[headerAPIKey] = []string{config.APIKey}

	return req, nil
}

// setHeaders applies the fixed UploadThing header set.
func setHeaders(req *http.Request, config Config) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header[headerAPIKey] = []string{config.APIKey}
	req.Header[headerVersion] = []string{config.Version}
}

// joinURL joins host and pathname with exactly one slash between them.
func joinURL(host, pathname string) string {
	return strings.TrimSuffix(host, "/") + "/" + strings.TrimPrefix(pathname, "/")
}

// encodeJSON serializes v without HTML escaping, so URLs and ampersands in
// payloads survive verbatim.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// validateFileKeys rejects an empty key list or any blank key before a request
// is built.
func validateFileKeys(op string, fileKeys []string) error {
	if len(fileKeys) == 0 {
		return fmt.Errorf("%s: at least one file key is required: %w", op, ErrInvalidInput)
	}
	for i, key := range fileKeys {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("%s: file key %d is blank: %w", op, i, ErrInvalidInput)
		}
	}
	return nil
}

// validateListOpts rejects a non-positive limit or negative offset. Nil opts
// and nil fields are fine; absent fields defer to the server defaults.
func validateListOpts(opts *ListFilesOpts) error {
	if opts == nil {
		return nil
	}
	if opts.Limit != nil && *opts.Limit <= 0 {
		return fmt.Errorf("listFiles: limit must be positive, got %d: %w", *opts.Limit, ErrInvalidInput)
	}
	if opts.Offset != nil && *opts.Offset < 0 {
		return fmt.Errorf("listFiles: offset must be non-negative, got %d: %w", *opts.Offset, ErrInvalidInput)
	}
	return nil
}

// validateRenames rejects an empty batch, blank keys or names, and duplicate
// destination names within the batch.
func validateRenames(renames []FileRename) error {
	if len(renames) == 0 {
		return fmt.Errorf("renameFiles: at least one rename is required: %w", ErrInvalidInput)
	}
	seen := make(map[string]int, len(renames))
	for i, r := range renames {
		if strings.TrimSpace(r.FileKey) == "" {
			return fmt.Errorf("renameFiles: rename %d has a blank file key: %w", i, ErrInvalidInput)
		}
		if strings.TrimSpace(r.NewName) == "" {
			return fmt.Errorf("renameFiles: rename %d has a blank new name: %w", i, ErrInvalidInput)
		}
		if j, ok := seen[r.NewName]; ok {
			return fmt.Errorf("renameFiles: renames %d and %d both target name %q: %w", j, i, r.NewName, ErrInvalidInput)
		}
		seen[r.NewName] = i
	}
	return nil
}

// validatePresignOpts rejects a blank file key and an out-of-range expiry.
func validatePresignOpts(opts PresignedURLOpts) error {
	if strings.TrimSpace(opts.FileKey) == "" {
		return fmt.Errorf("requestFileAccess: file key is required: %w", ErrInvalidInput)
	}
	if opts.ExpiresIn != nil && (*opts.ExpiresIn < 0 || *opts.ExpiresIn > MaxExpireSeconds) {
		return fmt.Errorf("requestFileAccess: expires_in %d is outside 0..%d: %w",
			*opts.ExpiresIn, MaxExpireSeconds, ErrInvalidInput)
	}
	return nil
}

// validateUploadFiles rejects an empty batch, blank names, and negative sizes.
func validateUploadFiles(files []UploadFileInfo) error {
	if len(files) == 0 {
		return fmt.Errorf("uploadFiles: at least one file is required: %w", ErrInvalidInput)
	}
	for i, f := range files {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("uploadFiles: file %d has a blank name: %w", i, ErrInvalidInput)
		}
		if f.Size < 0 {
			return fmt.Errorf("uploadFiles: file %d has negative size %d: %w", i, f.Size, ErrInvalidInput)
		}
	}
	return nil
}

// validateFileKey rejects a blank single key.
func validateFileKey(op, fileKey string) error {
	if strings.TrimSpace(fileKey) == "" {
		return fmt.Errorf("%s: file key is required: %w", op, ErrInvalidInput)
	}
	return nil
}
