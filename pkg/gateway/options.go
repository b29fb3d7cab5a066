package gateway

import "net/http"

type clientOptions struct {
	httpClient *http.Client
	transcript Transcript
}

type Option func(o *clientOptions)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

func WithTranscript(transcript Transcript) Option {
	return func(o *clientOptions) {
		o.transcript = transcript
	}
}
