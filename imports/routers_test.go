package imports

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/parsers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func upload(t *testing.T, resourceType, filename, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if resourceType != "" {
		require.NoError(t, writer.WriteField("resource_type", resourceType))
	}
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	r := gin.New()
	RegisterRoutes(r.Group("/api/pd"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pd/imports/preview", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	r.ServeHTTP(w, req)
	return w
}

const membersCSV = "id,last,first,address,apt,phone,email,city,state,zip\n" +
	"1,Brennan,Jimmy,936 Fifth Avenue,,212-737-0349,,New York,NY,10021\n" +
	"2,Ghost,,,,,,,,\n"

func TestPreviewImport_Members(t *testing.T) {
	w := upload(t, "members", "members.csv", membersCSV)
	require.Equal(t, http.StatusOK, w.Code)

	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.DataRows)
	assert.Equal(t, 1, resp.Records)
	assert.Equal(t, 1, resp.Dropped)
	assert.Nil(t, resp.HeaderError)
	require.Len(t, resp.Members, 1)
	assert.Equal(t, "Brennan, Jimmy", resp.Members[0].FullName)
	assert.Equal(t, 1, resp.Report.MembersMissingEmail)
	assert.Zero(t, resp.Report.VendorsTotal)
}

func TestPreviewImport_Errors(t *testing.T) {
	w := upload(t, "comments", "x.csv", membersCSV)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "resource_type must be one of")

	w = upload(t, "members", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "File is required")

	w = upload(t, "members", "members.ndjson", "{}")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreview_VendorsNarrowHeader(t *testing.T) {
	rows := parsers.ParseCSV("category,company\nPlumbing,Able Pipes,,,,,555-0100\n")

	resp := Preview(ResourceVendors, rows)

	require.NotNil(t, resp.HeaderError)
	assert.Contains(t, resp.HeaderError.Message, "expected at least 15")
	require.Len(t, resp.Vendors, 1)
	assert.Equal(t, "Plumbing", resp.Vendors[0].Category)
	assert.Equal(t, 1, resp.Report.VendorsMissingEmail)
}

func TestPreview_Empty(t *testing.T) {
	resp := Preview(ResourceMembers, nil)

	assert.Zero(t, resp.DataRows)
	assert.Zero(t, resp.Records)
	assert.Nil(t, resp.HeaderError)
	assert.NotNil(t, resp.Report.Issues)
}
