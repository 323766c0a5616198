package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/runstack/runstack/pkg/runner"
)

// runTUI executes order under a bubbletea progress view. The run happens in
// a background goroutine; unit state changes are forwarded to the model as
// messages. Quitting the view cancels the run, which then winds down before
// the final model is returned.
func runTUI(ctx context.Context, order []string, exec runner.Executor, opts runner.Options) (runner.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := newRunModel(order, cancel)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	opts.OnEvent = func(ev runner.Event) { p.Send(eventMsg(ev)) }
	go func() {
		res, err := runner.Run(ctx, order, exec, opts)
		p.Send(doneMsg{res: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		// Cancellation (q, ctrl+c, SIGINT) kills the program before the
		// final doneMsg; report it as such.
		if ctx.Err() != nil {
			return runner.Result{}, ctx.Err()
		}
		return runner.Result{}, fmt.Errorf("progress view: %w", err)
	}
	m := final.(runModel)
	return m.res, m.err
}

// Messages consumed by runModel.
type (
	eventMsg runner.Event
	doneMsg  struct {
		res runner.Result
		err error
	}
	tickMsg time.Time
)

// unitView is the displayed state of one unit.
type unitView struct {
	status runner.Status
	errMsg string
	seen   bool // whether any event arrived for this unit
}

// runModel renders one line per unit with a live status icon.
type runModel struct {
	order  []string
	views  []unitView
	frame  int
	done   bool
	res    runner.Result
	err    error
	cancel context.CancelFunc
}

func newRunModel(order []string, cancel context.CancelFunc) runModel {
	return runModel{
		order:  order,
		views:  make([]unitView, len(order)),
		cancel: cancel,
	}
}

func tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the spinner ticker.
func (m runModel) Init() tea.Cmd { return tick() }

// Update handles run events, the spinner ticker, and cancellation keys.
func (m runModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		if msg.Index >= 0 && msg.Index < len(m.views) {
			v := &m.views[msg.Index]
			v.status = msg.Status
			v.seen = true
			if msg.Err != nil {
				v.errMsg = msg.Err.Error()
			}
		}
		return m, nil

	case doneMsg:
		m.done = true
		m.res = msg.res
		m.err = msg.err
		return m, tea.Quit

	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		return m, tick()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			// Cancel the run; the final doneMsg quits the view.
			m.cancel()
		}
		return m, nil
	}
	return m, nil
}

// View renders the unit list with status icons.
func (m runModel) View() string {
	var b strings.Builder
	b.WriteString(styleTitle.Render(fmt.Sprintf("Running %d units", len(m.order))))
	b.WriteString("\n\n")

	for i, unit := range m.order {
		v := m.views[i]
		var icon, suffix string
		switch {
		case !v.seen:
			icon = styleDim.Render(iconPending)
		case v.status == runner.StatusRunning:
			icon = styleTitle.Render(spinnerFrames[m.frame%len(spinnerFrames)])
		case v.status == runner.StatusOK:
			icon = styleSuccess.Render(iconSuccess)
		case v.status == runner.StatusFailed:
			icon = styleError.Render(iconError)
			suffix = styleError.Render("  " + v.errMsg)
		case v.status == runner.StatusSkipped:
			icon = styleWarning.Render(iconSkipped)
			suffix = styleDim.Render("  " + v.errMsg)
		}
		fmt.Fprintf(&b, "  %s %s%s\n", icon, styleValue.Render(unit), suffix)
	}

	b.WriteString("\n")
	b.WriteString(styleDim.Render("q to cancel"))
	b.WriteString("\n")
	return b.String()
}
