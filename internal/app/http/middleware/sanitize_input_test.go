package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSanitizer(t *testing.T, method, contentType, body string) (*httptest.ResponseRecorder, []byte) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var seen []byte
	r := gin.New()
	r.Use(SanitizeAndCleanInputMiddleware())
	handle := func(c *gin.Context) {
		var err error
		seen, err = io.ReadAll(c.Request.Body)
		require.NoError(t, err)
		c.Status(http.StatusOK)
	}
	r.POST("/echo", handle)
	r.GET("/echo", handle)

	req := httptest.NewRequest(method, "/echo", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr, seen
}

func TestSanitizeStripsMarkupFromNestedFields(t *testing.T) {
	payload := `{
		"plan_id": "small",
		"project": {
			"name": "<script>alert(1)</script>Marina Tower",
			"city": "Hamburg"
		},
		"storage_addon_ids": ["<b>storage-10gb</b>"]
	}`

	rr, seen := runSanitizer(t, http.MethodPost, "application/json", payload)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(seen, &body))

	project := body["project"].(map[string]interface{})
	assert.Equal(t, "Marina Tower", project["name"])
	assert.Equal(t, "Hamburg", project["city"])

	addons := body["storage_addon_ids"].([]interface{})
	assert.Equal(t, "storage-10gb", addons[0])
}

func TestSanitizeLeavesNonStringValuesAlone(t *testing.T) {
	rr, seen := runSanitizer(t, http.MethodPost, "application/json", `{"extra_seats": 3, "active": true}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(seen, &body))
	assert.Equal(t, float64(3), body["extra_seats"])
	assert.Equal(t, true, body["active"])
}

func TestSanitizeSkipsNonJSONContent(t *testing.T) {
	raw := "name=<b>bold</b>"
	rr, seen := runSanitizer(t, http.MethodPost, "application/x-www-form-urlencoded", raw)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, raw, string(seen))
}

func TestSanitizeSkipsReadRequests(t *testing.T) {
	rr, _ := runSanitizer(t, http.MethodGet, "", "")
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	rr, _ := runSanitizer(t, http.MethodPost, "application/json", `{"name": `)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSanitizeAllowsEmptyBody(t *testing.T) {
	rr, _ := runSanitizer(t, http.MethodPost, "application/json", "")
	require.Equal(t, http.StatusOK, rr.Code)
}
