package adapter

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/joeydtaylor/steeze-runtime/pkg/codec"
)

// ProxyRequest is the event web-style adapters receive.
type ProxyRequest struct {
	Method          string            `json:"method"`
	Path            string            `json:"path"`
	Query           string            `json:"query,omitempty"`
	Headers         map[string]string   `json:"headers,omitempty"`
	MultiHeaders    map[string][]string `json:"multiValueHeaders,omitempty"`
	Body            string              `json:"body,omitempty"`
	IsBase64Encoded bool                `json:"isBase64Encoded,omitempty"`
}

// ProxyResponse is what web-style adapters return. Headers carries the first
// value of each header, MultiHeaders every value.
type ProxyResponse struct {
	StatusCode      int                 `json:"statusCode"`
	Headers         map[string]string   `json:"headers,omitempty"`
	MultiHeaders    map[string][]string `json:"multiValueHeaders,omitempty"`
	Body            string              `json:"body"`
	IsBase64Encoded bool                `json:"isBase64Encoded,omitempty"`
}

// serveProxy decodes a ProxyRequest, runs it through h in memory and encodes
// the ProxyResponse.
func serveProxy(ctx context.Context, h http.Handler, c codec.Codec, in []byte) ([]byte, error) {
	var ev ProxyRequest
	if err := c.Unmarshal(in, &ev); err != nil {
		return nil, fmt.Errorf("adapter: proxy request: %w", err)
	}
	req, err := ev.toHTTP(ctx)
	if err != nil {
		return nil, err
	}
	rb := newResponseBuffer()
	h.ServeHTTP(rb, req)
	return c.Marshal(rb.toProxy())
}

func (ev ProxyRequest) toHTTP(ctx context.Context) (*http.Request, error) {
	method := strings.ToUpper(strings.TrimSpace(ev.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := ev.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	body := []byte(ev.Body)
	if ev.IsBase64Encoded {
		b, err := base64.StdEncoding.DecodeString(ev.Body)
		if err != nil {
			return nil, fmt.Errorf("adapter: proxy body: %w", err)
		}
		body = b
	}
	u := &url.URL{Path: path, RawQuery: ev.Query}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("adapter: proxy request: %w", err)
	}
	for k, v := range ev.Headers {
		req.Header.Set(k, v)
	}
	for k, vs := range ev.MultiHeaders {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.RequestURI = u.RequestURI()
	return req, nil
}

// responseBuffer is an in-memory http.ResponseWriter.
type responseBuffer struct {
	header http.Header
	status int
	body   bytes.Buffer
}

func newResponseBuffer() *responseBuffer {
	return &responseBuffer{header: http.Header{}}
}

func (rb *responseBuffer) Header() http.Header { return rb.header }

func (rb *responseBuffer) WriteHeader(code int) {
	if rb.status == 0 {
		rb.status = code
	}
}

func (rb *responseBuffer) Write(p []byte) (int, error) {
	if rb.status == 0 {
		rb.status = http.StatusOK
	}
	return rb.body.Write(p)
}

func (rb *responseBuffer) toProxy() ProxyResponse {
	status := rb.status
	if status == 0 {
		status = http.StatusOK
	}
	hdrs := make(map[string]string, len(rb.header))
	multi := make(map[string][]string, len(rb.header))
	for k, vs := range rb.header {
		if len(vs) == 0 {
			continue
		}
		hdrs[k] = vs[0]
		multi[k] = slices.Clone(vs)
	}
	return ProxyResponse{StatusCode: status, Headers: hdrs, MultiHeaders: multi, Body: rb.body.String()}
}
