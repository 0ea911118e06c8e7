package utapi

import "context"

// DeleteFiles permanently removes the given files. Deletion is idempotent:
// keys the service no longer knows do not fail the call, and the response
// reports the aggregate outcome. At least one key is required.
func (c *Client) DeleteFiles(ctx context.Context, fileKeys []string) (*DeleteFileResponse, error) {
	const op = "deleteFile"
	if err := validateFileKeys(op, fileKeys); err != nil {
		return nil, err
	}

	resp, err := c.RequestUploadthing(ctx, pathDeleteFile, &fileKeysPayload{FileKeys: fileKeys})
	if err != nil {
		return nil, err
	}

	var wire deleteFileWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}

// GetFileURLs resolves public URLs for the given file keys. The response
// preserves the service's ordering; keys it could not resolve are simply
// absent. At least one key is required.
func (c *Client) GetFileURLs(ctx context.Context, fileKeys []string) (*FileURLsResponse, error) {
	const op = "getFileUrl"
	if err := validateFileKeys(op, fileKeys); err != nil {
		return nil, err
	}

	resp, err := c.RequestUploadthing(ctx, pathGetFileURL, &fileKeysPayload{FileKeys: fileKeys})
	if err != nil {
		return nil, err
	}

	var wire fileURLsWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}

// ListFiles returns one page of the files stored under the account, in server
// order. A nil opts (or nil fields within it) leaves the window to the
// server-side defaults; nothing is filled in client-side.
func (c *Client) ListFiles(ctx context.Context, opts *ListFilesOpts) (*ListFilesResponse, error) {
	const op = "listFiles"
	if err := validateListOpts(opts); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &ListFilesOpts{}
	}

	resp, err := c.RequestUploadthing(ctx, pathListFiles, opts)
	if err != nil {
		return nil, err
	}

	var wire listFilesWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}

// RenameFiles changes the display names of the given files. Keys and URLs are
// unaffected. Each rename in the batch needs a key and a non-blank new name,
// and two renames may not target the same name.
func (c *Client) RenameFiles(ctx context.Context, renames []FileRename) (*RenameFilesResponse, error) {
	const op = "renameFiles"
	if err := validateRenames(renames); err != nil {
		return nil, err
	}

	resp, err := c.RequestUploadthing(ctx, pathRenameFiles, &renameFilesPayload{Files: renames})
	if err != nil {
		return nil, err
	}

	var wire renameFilesWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}

// GetUsageInfo fetches the account's storage usage snapshot. The endpoint
// takes no parameters; its payload is JSON null.
func (c *Client) GetUsageInfo(ctx context.Context) (*UsageInfo, error) {
	const op = "getUsageInfo"

	resp, err := c.RequestUploadthing(ctx, pathGetUsageInfo, nil)
	if err != nil {
		return nil, err
	}

	var wire usageInfoWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}
