/*
Package utapi is a Go client for the UploadThing file storage HTTP API. It
covers the service's management surface: deleting stored files, resolving
their public URLs, listing them with pagination, renaming them, reading
account usage, issuing presigned access URLs, and opening upload sessions
with completion polling. Moving file bytes is deliberately out of scope; the
client hands back presigned URLs and the caller does the transfer with
whatever HTTP machinery suits it.

# Usage

Construct a client and call operations with a context:

	api, err := utapi.New()
	if err != nil {
		// no API key was provided or found in UPLOADTHING_SECRET
	}

	listing, err := api.ListFiles(ctx, nil)
	if err != nil {
		return err
	}
	for _, f := range listing.Files {
		fmt.Println(f.Key, f.Status)
	}

	_, err = api.DeleteFiles(ctx, []string{"2273e745-1ebf-4b8e-a18b-1cb9a7a98245-tkyi16.png"})

Pagination, expiry, and other optional request fields are pointers: a nil
field is omitted from the wire so the server-side default applies, which is
not the same thing as sending a zero.

# Authentication

Every request carries the account's secret key. New resolves it once, at
construction: an explicit utapi.WithAPIKey wins, otherwise the
UPLOADTHING_SECRET environment variable is consulted (override the lookup
with utapi.WithCredentialSource). Construction fails with
ErrMissingCredentials when neither yields a key. NewFromConfig takes the
caller's Config as-is and never reads the environment; options still apply
on top, with WithAPIKey replacing the config's key and a supplied
credential source filling a blank one. Operations on a keyless client fail
with ErrMissingCredentials before any request is sent.

# Errors

Failures fall into five kinds, each matchable with errors.Is/errors.As or the
package's predicates:

  - ErrInvalidInput: arguments failed a documented precondition; nothing was sent
  - ErrMissingCredentials: no usable API key
  - *RemoteError: the service rejected the call (status, code, message, raw body)
  - *TransportError: the round trip failed beneath the wire contract
  - ErrMalformedResponse: a success status with a body that does not match the schema

# Mocking

Client's network edge is the Transport interface, satisfied by *http.Client.
Tests pass a MockTransport, which replays queued responses and records every
request for assertion:

	mock := new(utapi.MockTransport).QueueResponse(200, `{"success": true}`)
	api, _ := utapi.New(utapi.WithAPIKey("sk_live_test"), utapi.WithTransport(mock))
*/
package utapi
