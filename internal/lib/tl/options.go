package tl

import (
	tea "github.com/charmbracelet/bubbletea"
)

type option struct {
	inited         bool
	concurrency    int
	programOptions []tea.ProgramOption
}

func defaultOption() option {
	return option{
		inited:      true,
		concurrency: 1,
	}
}

type OptionApplier func(o *option)

// WithConcurrency sets how many tasks may run at the same time.
func WithConcurrency(n int) OptionApplier {
	return func(o *option) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithProgramOptions passes extra options to the underlying bubbletea
// program, e.g. to replace its input or renderer.
func WithProgramOptions(opts ...tea.ProgramOption) OptionApplier {
	return func(o *option) {
		o.programOptions = append(o.programOptions, opts...)
	}
}
