package testutils

import (
	"io"
	"net/http"
	"net/http/httptest"
)

// CreateTestRequest builds an httptest request with path values set the way
// the real mux would set them.
func CreateTestRequest(method, target string, body io.Reader, pathParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, target, body)

	for key, value := range pathParams {
		req.SetPathValue(key, value)
	}

	return req
}
