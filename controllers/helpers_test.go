package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/karmic/meals-api/routes"
	"github.com/karmic/meals-api/services"
	"github.com/karmic/meals-api/tests/testutil"
	"gorm.io/gorm"
)

const apiPrefix = "/api/v1"

// Wednesday, 10 January 2024
var testNow = time.Date(2024, time.January, 10, 9, 0, 0, 0, time.Local)

// setupTestRouter builds the application router over an in-memory database,
// with the clock fixed at testNow
func setupTestRouter(t *testing.T, storage services.S3Interface) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	db := testutil.NewTestDB(t)

	router := routes.SetupRouter(routes.Dependencies{
		Config:  testutil.TestConfig(),
		DB:      db,
		Storage: storage,
		Clock:   testutil.FixedClock(testNow),
	})
	return router, db
}

// performRequest sends body (marshaled to JSON unless it is a string) to
// path under the API prefix and returns the recorder
func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(b)
	}

	req, _ := http.NewRequest(method, apiPrefix+path, bytes.NewBuffer(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var response map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response %q: %v", w.Body.String(), err)
	}
	return response
}

func errorCode(response map[string]interface{}) string {
	errObj, ok := response["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	code, _ := errObj["code"].(string)
	return code
}

func errorDetails(response map[string]interface{}) map[string]interface{} {
	errObj, _ := response["error"].(map[string]interface{})
	details, _ := errObj["details"].(map[string]interface{})
	return details
}
