package utapi

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type filesTestSuite struct {
	suite.Suite
	mock *MockTransport
	api  *Client
}

func (ts *filesTestSuite) SetupTest() {
	ts.mock = new(MockTransport)
	api, err := New(WithAPIKey("sk_live_test"), WithTransport(ts.mock))
	ts.Require().NoError(err)
	ts.api = api
}

func (ts *filesTestSuite) TestDeleteFiles() {
	ts.mock.QueueResponse(200, `{"success":true,"deletedCount":2}`)

	res, err := ts.api.DeleteFiles(context.Background(), []string{"k1", "k2"})
	ts.NoError(err)
	ts.True(res.Success)
	ts.Equal(2, res.DeletedCount)

	ts.Equal(1, ts.mock.CallCount())
	ts.Equal("/api/deleteFile", ts.mock.Request(0).URL.Path)
	ts.JSONEq(`{"file_keys":["k1","k2"]}`, ts.mock.Body(0))
}

func (ts *filesTestSuite) TestDeleteFilesIdempotent() {
	ts.mock.
		QueueResponse(200, `{"success":true,"deletedCount":1}`).
		QueueResponse(200, `{"success":true,"deletedCount":0}`)

	first, err := ts.api.DeleteFiles(context.Background(), []string{"gone"})
	ts.NoError(err)
	ts.True(first.Success)

	second, err := ts.api.DeleteFiles(context.Background(), []string{"gone"})
	ts.NoError(err, "deleting an already deleted key stays successful")
	ts.True(second.Success)
	ts.Zero(second.DeletedCount)
}

func (ts *filesTestSuite) TestDeleteFilesRejectsBadInput() {
	_, err := ts.api.DeleteFiles(context.Background(), nil)
	ts.True(IsInvalidInput(err), "empty key list")

	_, err = ts.api.DeleteFiles(context.Background(), []string{""})
	ts.True(IsInvalidInput(err), "blank key")

	ts.Equal(0, ts.mock.CallCount(), "invalid input must not produce a request")
}

func (ts *filesTestSuite) TestGetFileURLs() {
	ts.mock.QueueResponse(200, `{"data":[{"url":"https://utfs.io/f/k1","key":"k1"}]}`)

	res, err := ts.api.GetFileURLs(context.Background(), []string{"k1", "missing"})
	ts.NoError(err)
	ts.Len(res.Data, 1, "unresolved keys are absent, not errors")
	ts.Equal("https://utfs.io/f/k1", res.ByKey()["k1"])

	ts.Equal("/api/getFileUrl", ts.mock.Request(0).URL.Path)
	ts.JSONEq(`{"file_keys":["k1","missing"]}`, ts.mock.Body(0))
}

func (ts *filesTestSuite) TestListFilesDefaultWindow() {
	ts.mock.QueueResponse(200, `{"files":[]}`)

	res, err := ts.api.ListFiles(context.Background(), nil)
	ts.NoError(err)
	ts.Empty(res.Files)
	ts.False(res.HasMore)
	ts.JSONEq(`{}`, ts.mock.Body(0), "absent limit and offset stay absent on the wire")
}

func (ts *filesTestSuite) TestListFilesWindow() {
	ts.mock.QueueResponse(200, `{"files":[
		{"key":"k1","id":"i1","status":"Uploaded"},
		{"key":"k2","id":"i2","status":"Failed"}
	],"hasMore":true}`)

	limit, offset := 2, 4
	res, err := ts.api.ListFiles(context.Background(), &ListFilesOpts{Limit: &limit, Offset: &offset})
	ts.NoError(err)
	ts.Len(res.Files, 2)
	ts.Equal("k1", res.Files[0].Key, "server order is preserved")
	ts.Equal(StatusFailed, res.Files[1].Status)
	ts.True(res.HasMore)
	ts.JSONEq(`{"limit":2,"offset":4}`, ts.mock.Body(0))
}

func (ts *filesTestSuite) TestListFilesRejectsBadWindow() {
	zero := 0
	_, err := ts.api.ListFiles(context.Background(), &ListFilesOpts{Limit: &zero})
	ts.True(IsInvalidInput(err))
	ts.Equal(0, ts.mock.CallCount())
}

func (ts *filesTestSuite) TestListFilesMalformedBody() {
	ts.mock.QueueResponse(200, `{"entries":[]}`)
	_, err := ts.api.ListFiles(context.Background(), nil)
	ts.True(IsMalformedResponse(err), "a success status with the wrong schema is an error")
}

func (ts *filesTestSuite) TestRenameFiles() {
	ts.mock.QueueResponse(200, `{"success":true,"renamedCount":1}`)

	res, err := ts.api.RenameFiles(context.Background(), []FileRename{{FileKey: "k1", NewName: "sunset.png"}})
	ts.NoError(err)
	ts.True(res.Success)
	ts.Equal(1, res.RenamedCount)

	ts.Equal("/api/renameFiles", ts.mock.Request(0).URL.Path)
	ts.JSONEq(`{"files":[{"file_key":"k1","new_name":"sunset.png"}]}`, ts.mock.Body(0))
}

func (ts *filesTestSuite) TestRenameFilesRejectsDuplicateTargets() {
	_, err := ts.api.RenameFiles(context.Background(), []FileRename{
		{FileKey: "k1", NewName: "same.png"},
		{FileKey: "k2", NewName: "same.png"},
	})
	ts.True(IsInvalidInput(err))
	ts.Equal(0, ts.mock.CallCount())
}

func (ts *filesTestSuite) TestGetUsageInfo() {
	ts.mock.QueueResponse(200, `{
		"total_bytes":1073741824,
		"total_readable":"1 GB",
		"app_total_bytes":1073741824,
		"app_total_readable":"1 GB",
		"files_uploaded":12,
		"limit_bytes":2147483648,
		"limit_readable":"2 GB"
	}`)

	info, err := ts.api.GetUsageInfo(context.Background())
	ts.NoError(err)
	ts.Equal(int64(1073741824), info.TotalBytes)
	ts.Equal("1 GB", info.TotalReadable)
	ts.Equal(12, info.FilesUploaded)

	ts.Equal("/api/getUsageInfo", ts.mock.Request(0).URL.Path)
	ts.Equal("null", ts.mock.Body(0), "getUsageInfo sends a JSON null payload")
}

func (ts *filesTestSuite) TestRemoteErrorPassesThrough() {
	ts.mock.QueueResponse(403, `{"error":"forbidden","code":"FORBIDDEN"}`)

	_, err := ts.api.ListFiles(context.Background(), nil)
	re, ok := IsRemoteError(err)
	ts.True(ok)
	ts.Equal(403, re.Status)
	ts.Equal("FORBIDDEN", re.Code)
}

func TestFiles(t *testing.T) {
	suite.Run(t, new(filesTestSuite))
}
