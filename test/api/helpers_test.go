package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TestResponse wraps an API response for assertions.
type TestResponse struct {
	StatusCode int
	Status     string
	Message    string
	Data       map[string]interface{}
	RawData    string
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) GetString(key string) string {
	if v, ok := r.Data[key].(string); ok {
		return v
	}
	return ""
}

func (r TestResponse) GetFloat(key string) float64 {
	if v, ok := r.Data[key].(float64); ok {
		return v
	}
	return 0
}

// GetInt64 reads a numeric field; JSON numbers decode as float64.
func (r TestResponse) GetInt64(key string) int64 {
	return int64(r.GetFloat(key))
}

// GetList decodes the raw data as a JSON array.
func (r TestResponse) GetList() []map[string]interface{} {
	var items []map[string]interface{}
	_ = json.Unmarshal([]byte(r.RawData), &items)
	return items
}

func makeRequest(method, path string, body interface{}, token string) TestResponse {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return TestResponse{Status: "error", Message: err.Error()}
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, reqBody)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return TestResponse{Status: "error", Message: err.Error()}
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return TestResponse{
			StatusCode: resp.StatusCode,
			Status:     "error",
			Message:    fmt.Sprintf("failed to parse response: %v\nraw: %s", err, string(respBody)),
		}
	}

	testResp := TestResponse{
		StatusCode: resp.StatusCode,
		Status:     apiResp.Status,
		Message:    apiResp.Message,
		RawData:    string(apiResp.Data),
	}
	if len(apiResp.Data) > 0 {
		var data map[string]interface{}
		if err := json.Unmarshal(apiResp.Data, &data); err == nil {
			testResp.Data = data
		}
	}
	return testResp
}
