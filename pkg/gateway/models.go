package gateway

import "time"

// Request describes a single probe to send to the gateway.
type Request struct {
	// URL being requested.
	URL string
	// Method used to access the gateway.
	Method string
	// Headers to forward, values may be any JSON type.
	Headers map[string]any
	// Body is the JSON object sent as the request body, nil for none.
	Body map[string]any
	// Params are appended to the URL as query parameters.
	Params map[string]any
	// Timeout for the whole exchange.
	Timeout time.Duration
}

// Response contains information about the gateway's response.
type Response struct {
	// StatusCode is the HTTP status code of the response, such as 200, 401,
	// 404 etc.
	StatusCode int
	// StatusPhrase is the phrase associated with the HTTP status code.
	StatusPhrase string
	// Headers of the response, multiple values joined with ", ".
	Headers map[string]string
	// Body is the raw text of the response body.
	Body string
	// JSON is the decoded body, nil when the body is not valid JSON.
	JSON any
}
