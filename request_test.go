package utapi

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/suite"
)

type requestTestSuite struct {
	suite.Suite
	config Config
}

func (ts *requestTestSuite) SetupTest() {
	ts.config = DefaultConfig()
	ts.config.APIKey = "sk_live_test"
}

func (ts *requestTestSuite) TestBuildRequest() {
	req, err := buildRequest(context.Background(), ts.config, pathDeleteFile, &fileKeysPayload{FileKeys: []string{"k"}})
	ts.NoError(err)
	ts.Equal("POST", req.Method)
	ts.Equal("https://uploadthing.com/api/deleteFile", req.URL.String())
}

func (ts *requestTestSuite) TestJoinURL() {
	ts.Equal("https://uploadthing.com/api/listFiles", joinURL("https://uploadthing.com", "/api/listFiles"))
	ts.Equal("https://uploadthing.com/api/listFiles", joinURL("https://uploadthing.com/", "api/listFiles"))
	ts.Equal("http://127.0.0.1:8080/api/listFiles", joinURL("http://127.0.0.1:8080/", "/api/listFiles"))
}

func (ts *requestTestSuite) TestHeaders() {
	req, err := buildRequest(context.Background(), ts.config, pathListFiles, &ListFilesOpts{})
	ts.NoError(err)

	ts.Equal("application/json", req.Header.Get("Content-Type"))
	ts.Equal("no-store", req.Header.Get("Cache-Control"))
	ts.Equal("utapi-go/"+Version+"/go", req.Header.Get("User-Agent"))

	// The custom header names keep their exact lowercase spelling in the map.
	ts.Equal([]string{"sk_live_test"}, req.Header["x-uploadthing-api-key"])
	ts.Equal([]string{Version}, req.Header["x-uploadthing-version"])
	ts.Empty(req.Header["X-Uploadthing-Api-Key"], "custom headers are not canonicalized")
}

func (ts *requestTestSuite) TestBuildGetRequest() {
	req, err := buildGetRequest(context.Background(), ts.config, pathPollUpload+"abc123")
	ts.NoError(err)
	ts.Equal("GET", req.Method)
	ts.Equal("https://uploadthing.com/api/pollUpload/abc123", req.URL.String())
	ts.Equal([]string{"sk_live_test"}, req.Header["x-uploadthing-api-key"])
	ts.Nil(req.Body)
}

func (ts *requestTestSuite) TestPayloadShapes() {
	limit, offset := 5, 10
	expires := int64(3600)
	tests := []struct {
		name    string
		payload any
		want    string
	}{
		{"file keys", &fileKeysPayload{FileKeys: []string{"a", "b"}}, `{"file_keys":["a","b"]}`},
		{"list window", &ListFilesOpts{Limit: &limit, Offset: &offset}, `{"limit":5,"offset":10}`},
		{"list defaults omitted", &ListFilesOpts{}, `{}`},
		{"renames", &renameFilesPayload{Files: []FileRename{{FileKey: "k", NewName: "n.png"}}}, `{"files":[{"file_key":"k","new_name":"n.png"}]}`},
		{"presign", &PresignedURLOpts{FileKey: "k", ExpiresIn: &expires, Transform: map[string]string{"width": "100"}}, `{"file_key":"k","expires_in":3600,"transform":{"width":"100"}}`},
		{"usage null", nil, `null`},
	}
	for _, tt := range tests {
		req, err := buildRequest(context.Background(), ts.config, pathListFiles, tt.payload)
		ts.NoError(err, tt.name)
		body, err := io.ReadAll(req.Body)
		ts.NoError(err, tt.name)
		ts.JSONEq(tt.want, string(body), tt.name)
	}
}

func (ts *requestTestSuite) TestUploadPayloadShape() {
	payload := uploadFilesPayload{
		Files:              []UploadFileInfo{{Name: "cat.png", Size: 12345, Type: "image/png"}},
		Metadata:           map[string]string{},
		ContentDisposition: DispositionInline,
		ACL:                ACLPublicRead,
	}
	body, err := encodeJSON(&payload)
	ts.NoError(err)
	ts.JSONEq(`{
		"files":[{"name":"cat.png","size":12345,"type":"image/png"}],
		"metadata":{},
		"contentDisposition":"inline",
		"acl":"public-read"
	}`, string(body))
}

func (ts *requestTestSuite) TestEncodeJSONKeepsHTMLCharacters() {
	body, err := encodeJSON(map[string]string{"q": "a&b<c>"})
	ts.NoError(err)
	ts.Equal(`{"q":"a&b<c>"}`, string(body))
}

func (ts *requestTestSuite) TestValidateFileKeys() {
	ts.NoError(validateFileKeys("deleteFile", []string{"a"}))
	ts.True(IsInvalidInput(validateFileKeys("deleteFile", nil)), "empty list")
	ts.True(IsInvalidInput(validateFileKeys("deleteFile", []string{"a", "  "})), "blank key")
}

func (ts *requestTestSuite) TestValidateListOpts() {
	ts.NoError(validateListOpts(nil))
	zero, negative, one := 0, -1, 1
	ts.NoError(validateListOpts(&ListFilesOpts{Limit: &one}))
	ts.True(IsInvalidInput(validateListOpts(&ListFilesOpts{Limit: &zero})), "zero limit")
	ts.True(IsInvalidInput(validateListOpts(&ListFilesOpts{Limit: &negative})), "negative limit")
	ts.True(IsInvalidInput(validateListOpts(&ListFilesOpts{Offset: &negative})), "negative offset")
}

func (ts *requestTestSuite) TestValidateRenames() {
	ts.NoError(validateRenames([]FileRename{{FileKey: "a", NewName: "x"}, {FileKey: "b", NewName: "y"}}))
	ts.True(IsInvalidInput(validateRenames(nil)), "empty batch")
	ts.True(IsInvalidInput(validateRenames([]FileRename{{FileKey: "", NewName: "x"}})), "blank key")
	ts.True(IsInvalidInput(validateRenames([]FileRename{{FileKey: "a", NewName: " "}})), "blank name")
	ts.True(IsInvalidInput(validateRenames([]FileRename{
		{FileKey: "a", NewName: "x"},
		{FileKey: "b", NewName: "x"},
	})), "duplicate destination name")
}

func (ts *requestTestSuite) TestValidatePresignOpts() {
	lifetime := int64(3600)
	atCap := MaxExpireSeconds
	overCap := MaxExpireSeconds + 1
	negative := int64(-1)

	ts.NoError(validatePresignOpts(PresignedURLOpts{FileKey: "k"}))
	ts.NoError(validatePresignOpts(PresignedURLOpts{FileKey: "k", ExpiresIn: &lifetime}))
	ts.NoError(validatePresignOpts(PresignedURLOpts{FileKey: "k", ExpiresIn: &atCap}), "the cap itself is allowed")
	ts.True(IsInvalidInput(validatePresignOpts(PresignedURLOpts{FileKey: " "})), "blank key")
	ts.True(IsInvalidInput(validatePresignOpts(PresignedURLOpts{FileKey: "k", ExpiresIn: &overCap})), "expiry over cap")
	ts.True(IsInvalidInput(validatePresignOpts(PresignedURLOpts{FileKey: "k", ExpiresIn: &negative})), "negative expiry")
}

func (ts *requestTestSuite) TestValidateUploadFiles() {
	ts.NoError(validateUploadFiles([]UploadFileInfo{{Name: "a.png", Size: 10}}))
	ts.True(IsInvalidInput(validateUploadFiles(nil)), "empty batch")
	ts.True(IsInvalidInput(validateUploadFiles([]UploadFileInfo{{Name: " ", Size: 1}})), "blank name")
	ts.True(IsInvalidInput(validateUploadFiles([]UploadFileInfo{{Name: "a", Size: -1}})), "negative size")
}

func TestRequest(t *testing.T) {
	suite.Run(t, new(requestTestSuite))
}
