package runner

import (
	"context"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"
	"github.com/rosshhun/gonormalizer"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
	"github.com/monetize-software/gateway-probe/pkg/jsonarg"
	"github.com/monetize-software/gateway-probe/pkg/progress"
	"github.com/monetize-software/gateway-probe/pkg/transcript"
)

const (
	exitOK          = 0
	exitTransport   = 1
	exitBadArgument = 2
)

type CLI struct {
	BaseURL    string  `env:"MONETIZE_GATEWAY_BASE_URL" default:"https://onlineapp.pro/api/v1/api-gateway" help:"Gateway base URL"`
	ProviderID string  `env:"MONETIZE_PROVIDER_ID" default:"220" help:"Provider ID or slug"`
	Method     string  `env:"MONETIZE_METHOD" default:"GET" enum:"GET,POST,PUT,PATCH,DELETE" help:"HTTP method"`
	ExtraPath  string  `env:"MONETIZE_EXTRA_PATH" help:"Path appended to the provider URL (e.g. 'chat/completions')"`
	Headers    string  `env:"MONETIZE_HEADERS_JSON" help:"JSON object of headers to forward"`
	Body       string  `env:"MONETIZE_BODY_JSON" help:"JSON object for the request body"`
	Params     string  `env:"MONETIZE_PARAMS_JSON" help:"JSON object for query params"`
	Timeout    float64 `env:"MONETIZE_TIMEOUT" default:"30" help:"Request timeout in seconds"`

	WARCDir string `name:"warc-dir" type:"existingdir" optional:"" help:"Directory where WARC records of the exchange are stored"`
}

func Run() {
	cli := &CLI{}
	cliCtx := kong.Parse(cli,
		kong.Name("gateway-probe"),
		kong.Description("Send a request to the API provider gateway and print a detailed response."),
		kong.UsageOnError())
	cliCtx.FatalIfErrorf(cliCtx.Error)

	if _, err := gonormalizer.Normalize(cli.BaseURL); err != nil {
		cliCtx.Fatalf("invalid base URL %q: %s", cli.BaseURL, err.Error())
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var err error
	var reporter progress.Reporter
	if isatty.IsTerminal(os.Stdout.Fd()) {
		reporter, err = progress.NewInteractiveReporter(cancel)
		if err != nil {
			cliCtx.Fatalf("Could not create console reporter: %s", err.Error())
			return
		}
	} else {
		reporter, err = progress.NewConsoleReporter()
		if err != nil {
			cliCtx.Fatalf("Could not create console reporter: %s", err.Error())
			return
		}
	}

	code := cli.run(ctx, reporter)
	reporter.Close()
	if code != exitOK {
		os.Exit(code)
	}
}

func (cli *CLI) run(ctx context.Context, reporter progress.Reporter) int {
	headers, err := jsonarg.Parse("--headers", cli.Headers)
	if err != nil {
		reporter.Error(err, "Invalid argument")
		return exitBadArgument
	}

	body, err := jsonarg.Parse("--body", cli.Body)
	if err != nil {
		reporter.Error(err, "Invalid argument")
		return exitBadArgument
	}

	params, err := jsonarg.Parse("--params", cli.Params)
	if err != nil {
		reporter.Error(err, "Invalid argument")
		return exitBadArgument
	}

	// Applied before the summary is printed so the printed headers
	// match what is sent.
	headers = gateway.DefaultContentType(headers, body != nil)

	req := &gateway.Request{
		URL:     gateway.BuildURL(cli.BaseURL, cli.ProviderID, cli.ExtraPath),
		Method:  cli.Method,
		Headers: headers,
		Body:    body,
		Params:  params,
		Timeout: time.Duration(cli.Timeout * float64(time.Second)),
	}

	options := []gateway.Option{}
	if cli.WARCDir != "" {
		prefix := time.Now().In(time.UTC).Format("20060102150405") + "-"
		warcWriter, err := transcript.NewWARCWriter(cli.WARCDir, transcript.WithPrefix(prefix))
		if err != nil {
			reporter.Error(err, "Could not create WARC output")
			return exitTransport
		}
		defer func() { _ = warcWriter.Close() }()
		options = append(options, gateway.WithTranscript(warcWriter))
		reporter.Info("Recording WARC transcript to " + cli.WARCDir)
	}

	reporter.Request(req)

	client := gateway.NewClient(options...)
	res, err := client.Do(ctx, req)
	if err != nil {
		reporter.Error(err, "Request failed")
		return exitTransport
	}

	reporter.Response(res)
	return exitOK
}
