package tl

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Runner renders a task list while its tasks run.
//
// Quitting the UI (ctrl-c) cancels the context the tasks run under;
// Run does not return before every started task has finished.
type Runner struct {
	tl *TaskList

	err error
}

func New(tasks []*Task, options ...OptionApplier) *Runner {
	return &Runner{
		tl: NewTaskList(tasks, options...),
	}
}

func (runner *Runner) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runner.tl.prepare()
	p := tea.NewProgram(runner.createModel(cancel), runner.tl.programOptions...)

	finished := make(chan struct{})
	go func() {
		defer close(finished)
		runner.start(ctx, p)
	}()

	_, err := p.Run()
	canceled := ctx.Err() != nil

	// the UI is gone: abort whatever is still in flight, then wait for
	// it, so nothing touches task state after Run returns
	cancel()
	<-finished

	if err != nil {
		return err
	}

	if canceled {
		return fmt.Errorf("canceled")
	}
	if runner.err != nil {
		return runner.err
	}

	return nil
}

func (runner *Runner) start(ctx context.Context, p *tea.Program) {
	defer p.Send(tea.Quit())

	someTasksError := runner.tl.start(ctx, p)
	if someTasksError {
		runner.err = fmt.Errorf("some tasks error")
	}
}

type runnerModel struct {
	tl     tea.Model
	cancel context.CancelFunc
}

func (runner *Runner) createModel(cancel context.CancelFunc) runnerModel {
	return runnerModel{
		tl:     runner.tl.createModel(),
		cancel: cancel,
	}
}

func (m runnerModel) Init() tea.Cmd {
	return nil
}

func (m runnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if shouldQuit(msg) {
		m.cancel()
		return m, tea.Quit
	}

	tl, cmd := m.tl.Update(msg)
	m.tl = tl
	return m, cmd
}

func (m runnerModel) View() string {
	return m.tl.View()
}

func shouldQuit(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return true
		}
	}

	return false
}
