package progress

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/stopwatch"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/monetize-software/gateway-probe/pkg/gateway"
	"github.com/monetize-software/gateway-probe/pkg/report"
)

var quitKey = key.NewBinding(
	key.WithKeys("ctrl+c"),
)

var styleTime = lipgloss.NewStyle().
	Width(5)

var styleMethod = lipgloss.NewStyle().
	Bold(true).
	PaddingLeft(1).
	PaddingRight(1)

var styleURL = lipgloss.NewStyle().Faint(true)

var styleDefault = lipgloss.NewStyle().
	Bold(true).
	PaddingRight(1)

var style2xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#04B575")).
	PaddingRight(1)

var style3xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FDD835")).
	PaddingRight(1)

var style4xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FFA726")).
	PaddingRight(1)

var style5xx = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FF7043")).
	PaddingRight(1)

// interactiveReporter prints the same summaries as the console
// reporter but shows a spinner with a stopwatch while the request is
// in flight and colors the response status by class.
type interactiveReporter struct {
	ctxCancel func()

	teaOptions []tea.ProgramOption

	program *tea.Program
	done    chan struct{}
}

func NewInteractiveReporter(cancel func()) (Reporter, error) {
	return &interactiveReporter{
		ctxCancel: cancel,
	}, nil
}

func (m *interactiveReporter) Close() error {
	m.stopWaiting()
	return nil
}

func (m *interactiveReporter) Info(msg string) {
	fmt.Println(msg)
}

func (m *interactiveReporter) Error(err error, msg string) {
	m.stopWaiting()
	fmt.Fprintln(os.Stderr, "❌ "+msg+": "+err.Error())
}

func (m *interactiveReporter) Request(req *gateway.Request) {
	fmt.Print(report.FormatRequest(req))
	m.startWaiting(styleMethod.Render(req.Method) + styleURL.Render(req.URL))
}

func (m *interactiveReporter) Response(res *gateway.Response) {
	m.stopWaiting()

	statusStyle := styleDefault
	if res.StatusCode >= 200 && res.StatusCode < 300 {
		statusStyle = style2xx
	} else if res.StatusCode >= 300 && res.StatusCode < 400 {
		statusStyle = style3xx
	} else if res.StatusCode >= 400 && res.StatusCode < 500 {
		statusStyle = style4xx
	} else if res.StatusCode >= 500 && res.StatusCode < 600 {
		statusStyle = style5xx
	}
	fmt.Println(statusStyle.Render(strconv.Itoa(res.StatusCode) + " " + res.StatusPhrase))

	fmt.Print(report.FormatResponse(res))
	if hints := report.HintsFor(res.StatusCode); hints != "" {
		fmt.Print(hints)
	}
}

func (m *interactiveReporter) startWaiting(label string) {
	model := &waitModel{
		ctxCancel: m.ctxCancel,
		label:     label,
		stopwatch: stopwatch.NewWithInterval(time.Millisecond * 100),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}

	p := tea.NewProgram(model, m.teaOptions...)
	done := make(chan struct{})
	m.program = p
	m.done = done
	go func() {
		_, err := p.Run()
		close(done)
		if err != nil {
			os.Exit(1)
		}
	}()
}

// stopWaiting quits the spinner and blocks until the render goroutine
// has returned, so later prints cannot interleave with its output.
func (m *interactiveReporter) stopWaiting() {
	if m.program == nil {
		return
	}
	m.program.Quit()
	<-m.done
	m.program = nil
	m.done = nil
}

var _ Reporter = &interactiveReporter{}

type waitModel struct {
	ctxCancel func()

	label     string
	stopwatch stopwatch.Model
	spinner   spinner.Model
}

func (m *waitModel) Init() tea.Cmd {
	return tea.Batch(
		m.stopwatch.Init(),
		m.spinner.Tick,
	)
}

func (m *waitModel) View() string {
	return m.spinner.View() + styleTime.Render(m.stopwatch.View()) + m.label + "\n"
}

func (m *waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, quitKey) {
			m.ctxCancel()
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case stopwatch.TickMsg, stopwatch.StartStopMsg:
		var cmd tea.Cmd
		m.stopwatch, cmd = m.stopwatch.Update(msg)
		return m, cmd
	}
	return m, nil
}
