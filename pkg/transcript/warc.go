// Package transcript records probe exchanges as WARC files so a
// session can be replayed or diffed offline.
package transcript

import (
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/nlnwa/gowarc"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
)

type WARCWriter struct {
	writer *gowarc.WarcFileWriter
}

func NewWARCWriter(directory string, opts ...Option) (*WARCWriter, error) {
	config := &warcConfig{
		prefix: "%{prefix}s%{ts}s-",
	}
	for _, opt := range opts {
		opt(config)
	}

	writer := gowarc.NewWarcFileWriter(gowarc.WithFileNameGenerator(&gowarc.PatternNameGenerator{
		Directory: directory,
		Pattern:   config.prefix + "%04{serial}d.%{ext}s",
	}))

	return &WARCWriter{
		writer: writer,
	}, nil
}

func (o *WARCWriter) Close() error {
	return o.writer.Close()
}

func (o *WARCWriter) Request(req *http.Request) error {
	data, err := httputil.DumpRequestOut(req, true)
	if err != nil {
		return err
	}
	return o.record(gowarc.Request, "request", req.URL.String(), data)
}

func (o *WARCWriter) Response(req *http.Request, res *http.Response) error {
	data, err := httputil.DumpResponse(res, true)
	if err != nil {
		return err
	}
	return o.record(gowarc.Response, "response", req.URL.String(), data)
}

func (o *WARCWriter) record(recordType gowarc.RecordType, msgType string, targetURI string, data []byte) error {
	builder := gowarc.NewRecordBuilder(recordType)

	if _, err := builder.Write(data); err != nil {
		return err
	}

	builder.AddWarcHeader(gowarc.WarcTargetURI, targetURI)
	builder.AddWarcHeaderTime(gowarc.WarcDate, time.Now())
	builder.AddWarcHeader(gowarc.ContentType, "application/http; msgtype="+msgType)

	record, _, err := builder.Build()
	if err != nil {
		return err
	}

	o.writer.Write(record)
	return nil
}

var _ gateway.Transcript = &WARCWriter{}
