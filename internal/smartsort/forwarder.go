package smartsort

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"video-quiz/internal/config"
	"video-quiz/internal/domain"

	"go.uber.org/zap"
)

const (
	DefaultTimeout = 600 * time.Second

	maxResponseBytes = 16 << 20
)

// Error markers carried by upstream failure payloads.
const (
	ErrHTTPStatus  = "http_status_error"
	ErrRequest     = "request_error"
	ErrInvalidJSON = "invalid_json_response"
)

// SortRequest is the body posted to the sorting service.
type SortRequest struct {
	CourseName string      `json:"course_name"`
	Goals      string      `json:"goals"`
	Videos     []VideoItem `json:"videos"`
}

type PayloadPreview struct {
	CourseName  string `json:"course_name"`
	Goals       string `json:"goals"`
	VideosCount int    `json:"videos_count"`
}

// HTTPStatusFailure reports a non-2xx answer from the sorting service.
type HTTPStatusFailure struct {
	Error          string         `json:"error"`
	StatusCode     int            `json:"status_code"`
	ResponseText   string         `json:"response_text"`
	URL            string         `json:"url"`
	PayloadPreview PayloadPreview `json:"payload_preview"`
}

// RequestFailure reports that the sorting service could not be reached.
type RequestFailure struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// InvalidJSONFailure reports a 2xx answer whose body is not JSON.
type InvalidJSONFailure struct {
	Error        string `json:"error"`
	StatusCode   int    `json:"status_code"`
	ResponseText string `json:"response_text"`
}

// Forwarder posts sort requests to the configured service. Upstream failures
// are returned as payloads, not errors, so callers always have something to
// show.
type Forwarder struct {
	apiURL string
	client *http.Client
	logger *zap.Logger
}

// NewForwarder builds a Forwarder from cfg. An empty APIURL is allowed; Sort
// then fails with CodeBackendUnavailable.
func NewForwarder(cfg config.SmartSortConfig, logger *zap.Logger) *Forwarder {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewForwarderWithClient(cfg.APIURL, &http.Client{Timeout: timeout}, logger)
}

func NewForwarderWithClient(apiURL string, client *http.Client, logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Forwarder{apiURL: apiURL, client: client, logger: logger}
}

// Configured reports whether a service URL is set.
func (f *Forwarder) Configured() bool {
	return f.apiURL != ""
}

// Sort posts req and returns the decoded JSON answer or one of the failure
// payloads. Only a missing URL or an unencodable request is an error.
func (f *Forwarder) Sort(ctx context.Context, req SortRequest) (any, error) {
	if !f.Configured() {
		return nil, domain.NewBackendUnavailableError("smart sort service")
	}
	if req.Videos == nil {
		req.Videos = []VideoItem{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, domain.NewInternalError("failed to encode sort request", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.apiURL, bytes.NewReader(body))
	if err != nil {
		return RequestFailure{Error: ErrRequest, Message: err.Error(), URL: f.apiURL}, nil
	}
	httpReq.Header.Set("Content-Type", "application/json")

	l := f.logger.With(zap.String("url", f.apiURL), zap.Int("videos", len(req.Videos)))
	start := time.Now()

	resp, err := f.client.Do(httpReq)
	if err != nil {
		l.Warn("Smart sort request failed", zap.Error(err))
		return RequestFailure{Error: ErrRequest, Message: err.Error(), URL: f.apiURL}, nil
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		l.Warn("Failed to read smart sort response", zap.Error(err))
		return RequestFailure{Error: ErrRequest, Message: fmt.Sprintf("reading response: %v", err), URL: f.apiURL}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		l.Warn("Smart sort service returned an error status", zap.Int("status", resp.StatusCode))
		return HTTPStatusFailure{
			Error:        ErrHTTPStatus,
			StatusCode:   resp.StatusCode,
			ResponseText: string(data),
			URL:          f.apiURL,
			PayloadPreview: PayloadPreview{
				CourseName:  req.CourseName,
				Goals:       req.Goals,
				VideosCount: len(req.Videos),
			},
		}, nil
	}

	var result any
	if err := json.Unmarshal(data, &result); err != nil {
		l.Warn("Smart sort response is not JSON", zap.Int("status", resp.StatusCode))
		return InvalidJSONFailure{Error: ErrInvalidJSON, StatusCode: resp.StatusCode, ResponseText: string(data)}, nil
	}

	l.Info("Smart sort completed", zap.Duration("elapsed", time.Since(start)))
	return result, nil
}
