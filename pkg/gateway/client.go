package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Transcript receives the raw HTTP exchange for archival.
type Transcript interface {
	io.Closer

	Request(req *http.Request) error

	Response(req *http.Request, res *http.Response) error
}

// Client sends probes to a gateway. A single Do call performs exactly
// one network request, there are no retries.
type Client struct {
	httpClient *http.Client
	transcript Transcript
}

func NewClient(opts ...Option) *Client {
	options := &clientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		httpClient: httpClient,
		transcript: options.transcript,
	}
}

// Do sends the request and collects the response. The body is read
// fully before returning so the connection is released when Do returns.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestURL := req.URL
	if len(req.Params) > 0 {
		values := url.Values{}
		for key, value := range req.Params {
			values.Set(key, stringify(value))
		}
		separator := "?"
		if strings.Contains(requestURL, "?") {
			separator = "&"
		}
		requestURL += separator + values.Encode()
	}

	var bodyReader io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("could not encode body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, strings.ToUpper(req.Method), requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	for key, value := range DefaultContentType(req.Headers, req.Body != nil) {
		httpReq.Header.Set(key, stringify(value))
	}

	if c.transcript != nil {
		if err := c.transcript.Request(httpReq); err != nil {
			return nil, fmt.Errorf("could not record request: %w", err)
		}
	}

	httpClient := c.httpClient
	if req.Timeout > 0 {
		clientCopy := *httpClient
		clientCopy.Timeout = req.Timeout
		httpClient = &clientCopy
	}

	res, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	if c.transcript != nil {
		res.Body = io.NopCloser(bytes.NewBuffer(body))
		if err := c.transcript.Response(httpReq, res); err != nil {
			return nil, fmt.Errorf("could not record response: %w", err)
		}
	}

	headers := make(map[string]string, len(res.Header))
	for key, values := range res.Header {
		headers[key] = strings.Join(values, ", ")
	}

	response := &Response{
		StatusCode:   res.StatusCode,
		StatusPhrase: statusPhrase(res),
		Headers:      headers,
		Body:         string(body),
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err == nil {
		response.JSON = decoded
	}

	return response, nil
}

// DefaultContentType returns the headers with Content-Type set to
// application/json when a body is present and no content-type header
// was supplied, matching case-insensitively. The input map is not
// modified.
func DefaultContentType(headers map[string]any, hasBody bool) map[string]any {
	if !hasBody {
		return headers
	}

	for key := range headers {
		if strings.EqualFold(key, "Content-Type") {
			return headers
		}
	}

	withDefault := make(map[string]any, len(headers)+1)
	for key, value := range headers {
		withDefault[key] = value
	}
	withDefault["Content-Type"] = "application/json"
	return withDefault
}

func statusPhrase(res *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(res.Status, fmt.Sprint(res.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(res.StatusCode)
	}
	return phrase
}

func stringify(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprint(value)
}
