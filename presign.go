package utapi

import "context"

// GetPresignedURL asks the service to issue a time-limited URL granting direct
// access to one file, private files included. ExpiresIn, when set, must lie
// within 0..MaxExpireSeconds; when nil the service picks its own lifetime.
// Transform parameters pass through verbatim and the transformed variant keeps
// the same expiry.
//
// The returned expiry is read out of the issued URL itself. When the service
// issues a URL without one, ExpiresAt is the zero time rather than a local
// guess.
func (c *Client) GetPresignedURL(ctx context.Context, opts PresignedURLOpts) (*PresignedURL, error) {
	const op = "requestFileAccess"
	if err := validatePresignOpts(opts); err != nil {
		return nil, err
	}

	resp, err := c.RequestUploadthing(ctx, pathRequestFileAccess, &opts)
	if err != nil {
		return nil, err
	}

	var wire presignedURLWire
	if err := decodeBody(op, resp, &wire); err != nil {
		return nil, err
	}
	return wire.result(op)
}
