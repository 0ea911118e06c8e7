package utapi

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

// defaultMIMEType stands in for files registered without a content type.
const defaultMIMEType = "application/octet-stream"

// Polling schedule for WaitForUpload.
const (
	pollMaxAttempts = 20
	pollBaseDelay   = 500 * time.Millisecond
	pollMaxDelay    = 64 * time.Second
	pollFuzz        = 500 * time.Millisecond
)

// RequestFileUpload opens an upload session: the service registers the files
// and issues one UploadTicket per file, in order. Pushing the bytes to the
// ticket URLs is the caller's job; this client never carries file contents.
// A nil opts means empty metadata, inline disposition, and public-read access.
func (c *Client) RequestFileUpload(ctx context.Context, files []UploadFileInfo, opts *UploadFilesOpts) (*UploadFilesResponse, error) {
	const op = "uploadFiles"
	if err := validateUploadFiles(files); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &UploadFilesOpts{}
	}

	payload := uploadFilesPayload{
		Files:              make([]UploadFileInfo, len(files)),
		Metadata:           opts.Metadata,
		ContentDisposition: opts.ContentDisposition,
		ACL:                opts.ACL,
	}
	for i, f := range files {
		if f.Type == "" {
			f.Type = defaultMIMEType
		}
		payload.Files[i] = f
	}
	if payload.Metadata == nil {
		// The service expects an object here, not null.
		payload.Metadata = map[string]string{}
	}
	if payload.ContentDisposition == "" {
		payload.ContentDisposition = DispositionInline
	}
	if payload.ACL == "" {
		payload.ACL = ACLPublicRead
	}

	resp, err := c.RequestUploadthing(ctx, pathUploadFiles, &payload)
	if err != nil {
		return nil, err
	}

	var wire uploadFilesWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}

// PollUpload asks once whether the service has finished ingesting fileKey.
// This is the contract's only GET.
func (c *Client) PollUpload(ctx context.Context, fileKey string) (*PollUploadResponse, error) {
	const op = "pollUpload"
	if err := validateFileKey(op, fileKey); err != nil {
		return nil, err
	}

	resp, err := c.getUploadthing(ctx, pathPollUpload+url.PathEscape(fileKey))
	if err != nil {
		return nil, err
	}

	var wire pollUploadWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}

// WaitForUpload polls until the service marks fileKey done, sleeping between
// polls on an exponential schedule: 500ms doubling up to 64s, each delay
// fuzzed by up to 500ms. It stops early when ctx is done or the input is
// rejected, and gives up with ErrUploadNotDone after 20 polls. Transient
// failures along the way are retried; the last one is attached to the final
// error.
func (c *Client) WaitForUpload(ctx context.Context, fileKey string) error {
	b := backoff{base: pollBaseDelay, max: pollMaxDelay, fuzz: pollFuzz}
	return c.waitForUpload(ctx, fileKey, b, pollMaxAttempts)
}

func (c *Client) waitForUpload(ctx context.Context, fileKey string, b backoff, maxAttempts int) error {
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			if err := sleepCtx(ctx, b.forAttempt(attempt-1)); err != nil {
				return err
			}
		}

		poll, err := c.PollUpload(ctx, fileKey)
		switch {
		case err == nil && poll.Done():
			return nil
		case err == nil:
			lastErr = nil
			c.logger.Debug().
				Str("file_key", fileKey).
				Str("upload_status", poll.Status).
				Int("attempt", attempt+1).
				Msg("upload not done yet")
		case IsInvalidInput(err) || IsMissingCredentials(err):
			return err
		case ctx.Err() != nil:
			return ctx.Err()
		default:
			lastErr = err
			c.logger.Warn().
				Str("file_key", fileKey).
				Int("attempt", attempt+1).
				Err(err).
				Msg("poll attempt failed")
		}
	}

	if lastErr != nil {
		return fmt.Errorf("pollUpload: gave up on %q after %d polls: %w (last error: %w)",
			fileKey, maxAttempts, ErrUploadNotDone, lastErr)
	}
	return fmt.Errorf("pollUpload: gave up on %q after %d polls: %w", fileKey, maxAttempts, ErrUploadNotDone)
}
