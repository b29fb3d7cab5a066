package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
	"github.com/monetize-software/gateway-probe/pkg/report"
)

// ConsoleReporter prints plain summaries, suitable for piping and
// diffing. Errors go to the error writer.
type ConsoleReporter struct {
	out    io.Writer
	errOut io.Writer
}

func NewConsoleReporter() (*ConsoleReporter, error) {
	return &ConsoleReporter{
		out:    os.Stdout,
		errOut: os.Stderr,
	}, nil
}

// NewConsoleReporterWithWriters reports to the given writers instead
// of stdout and stderr.
func NewConsoleReporterWithWriters(out io.Writer, errOut io.Writer) *ConsoleReporter {
	return &ConsoleReporter{
		out:    out,
		errOut: errOut,
	}
}

func (c *ConsoleReporter) Close() error {
	return nil
}

func (c *ConsoleReporter) Info(msg string) {
	fmt.Fprintln(c.out, msg)
}

func (c *ConsoleReporter) Error(err error, msg string) {
	fmt.Fprintln(c.errOut, msg+": "+err.Error())
}

func (c *ConsoleReporter) Request(req *gateway.Request) {
	fmt.Fprint(c.out, report.FormatRequest(req))
}

func (c *ConsoleReporter) Response(res *gateway.Response) {
	fmt.Fprint(c.out, report.FormatResponse(res))
	if hints := report.HintsFor(res.StatusCode); hints != "" {
		fmt.Fprint(c.out, hints)
	}
}

var _ Reporter = &ConsoleReporter{}
