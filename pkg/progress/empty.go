package progress

import (
	"github.com/monetize-software/gateway-probe/pkg/gateway"
)

type emptyReporter struct {
}

func NewEmptyReporter() Reporter {
	return &emptyReporter{}
}

func (c *emptyReporter) Close() error {
	return nil
}

func (c *emptyReporter) Info(msg string) {
}

func (c *emptyReporter) Error(err error, msg string) {
}

func (c *emptyReporter) Request(req *gateway.Request) {
}

func (c *emptyReporter) Response(res *gateway.Response) {
}

var _ Reporter = &emptyReporter{}
