package resthttp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	headerKeyRequestID = "X-Request-Id"
)

var (
	runOnce     sync.Once
	restyClient *resty.Client
)

// Client shared resty client
func Client() *resty.Client {
	runOnce.Do(func() {
		restyClient = resty.New().
			SetHeader("Content-Type", "application/json").
			SetHeader("Charset", "utf-8").
			SetTimeout(10 * time.Second)
	})

	return restyClient
}

// Request new resty request bound to ctx
func Request(ctx context.Context) *resty.Request {
	return Client().R().SetContext(ctx)
}

// WithRequestID request carrying the request id header
func WithRequestID(ctx context.Context, requestID string) *resty.Request {
	return Request(ctx).SetHeader(headerKeyRequestID, requestID)
}

// ResponseError non 2xx response
type ResponseError struct {
	Status int
	Body   string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Body)
}

// Execute send the request and decode the response into resp
func Execute(request *resty.Request, method, url string, body, resp interface{}) error {
	if body != nil {
		request = request.SetBody(body)
	}

	r, err := request.Execute(strings.ToUpper(method), url)
	if err != nil {
		return err
	}

	return ParseResponse(r, resp)
}

// ParseResponse decode a successful response body into obj
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return &ResponseError{
			Status: r.StatusCode(),
			Body:   strings.TrimSpace(string(r.Body())),
		}
	}

	if obj == nil {
		return nil
	}

	// price endpoints wrap the payload in {"data": ...}
	var wrapped struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(r.Body(), &wrapped); err == nil && len(wrapped.Data) > 0 {
		return json.Unmarshal(wrapped.Data, obj)
	}

	return json.Unmarshal(r.Body(), obj)
}
