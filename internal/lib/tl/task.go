package tl

import (
	"context"
	"fmt"
	"strings"

	"github.com/ImSingee/go-ex/ee"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
)

type Task struct {
	Title string
	// Run receives the list's context; it is canceled when the user
	// quits the UI.
	Run func(ctx context.Context, callback TaskCallback) error

	id string
	option
}

// TaskCallback lets a running task report back to the list.
type TaskCallback interface {
	Skip(reason string)
}

type Result struct {
	Task *Task

	Skipped    bool
	SkipReason string
	Error      bool
	Err        error
}

func (t *Task) use() {
	if t.id != "" {
		panic("Cannot use the same task more than once")
	}

	t.id = uuid.NewString()
	if !t.inited {
		panic("Task can only be used inside TaskList (this is internal logic error)")
	}
}

func (t *Task) start(ctx context.Context, p *tea.Program) (result *Result) {
	result = &Result{Task: t}

	p.Send(&eventTaskStart{Id: t.id})

	defer func() {
		if result.Error {
			p.Send(&eventTaskFail{Id: t.id, Err: result.Err})
			return
		}

		if result.Skipped {
			p.Send(&eventTaskSkip{Id: t.id, Reason: result.SkipReason})
			return
		}

		p.Send(&eventTaskSuccess{Id: t.id})
	}()

	controller := &taskController{task: t}

	result.Err = t.run(ctx, controller)
	if result.Err != nil {
		result.Error = true
		return
	}

	if controller.skipped {
		result.Skipped = true
		result.SkipReason = controller.skipReason
	}

	return
}

func (t *Task) run(ctx context.Context, controller *taskController) (err error) {
	defer func() {
		if e := recover(); e != nil {
			err = fmt.Errorf("panic: %v", e)
		}
	}()

	if t.Run == nil {
		return ee.New("no Run function provided")
	}

	return t.Run(ctx, controller)
}

type taskController struct {
	task *Task

	skipped    bool
	skipReason string
}

func (c *taskController) Skip(reason string) {
	c.skipped = true
	c.skipReason = reason
}

type taskStatus uint8

const (
	taskStatusPending taskStatus = iota
	taskStatusRunning
	taskStatusSuccess
	taskStatusFailed
	taskStatusSkipped
)

type taskModel struct {
	id          string
	title       string
	status      taskStatus
	skipReason  string
	errorReason string
}

func (t *Task) createModel() taskModel {
	return taskModel{
		id:     t.id,
		title:  t.Title,
		status: taskStatusPending,
	}
}

func (m taskModel) Init() tea.Cmd {
	return nil
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch v := msg.(type) {
	case *eventTaskStart:
		if m.id == v.Id {
			m.status = taskStatusRunning
		}
	case *eventTaskSuccess:
		if m.id == v.Id {
			m.status = taskStatusSuccess
		}
	case *eventTaskFail:
		if m.id == v.Id {
			m.status = taskStatusFailed
			if v.Err != nil {
				m.errorReason = v.Err.Error()
			}
		}
	case *eventTaskSkip:
		if m.id == v.Id {
			m.status = taskStatusSkipped
			m.skipReason = v.Reason
		}
	}

	return m, nil
}

func (m taskModel) View() string {
	b := strings.Builder{}

	icon := symGray("○")
	switch m.status {
	case taskStatusRunning:
		icon = symBlue(">")
	case taskStatusSuccess:
		icon = symGreen("✓")
	case taskStatusFailed:
		icon = symRed("✗")
	case taskStatusSkipped:
		icon = symGray("-")
	}
	b.WriteString(icon + " ")

	b.WriteString(m.title)

	if m.status == taskStatusSkipped {
		b.WriteString(" (skipped")
		if m.skipReason != "" {
			b.WriteString(" - ")
			b.WriteString(m.skipReason)
		}
		b.WriteString(")")
	}

	b.WriteString("\n")

	if m.errorReason != "" {
		b.WriteString("  ERROR: ")
		b.WriteString(strings.TrimSpace(m.errorReason))
		b.WriteString("\n")
	}

	return b.String()
}
