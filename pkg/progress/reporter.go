package progress

import (
	"io"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
)

type Reporter interface {
	io.Closer

	Info(msg string)

	Error(err error, msg string)

	Request(req *gateway.Request)

	Response(res *gateway.Response)
}
