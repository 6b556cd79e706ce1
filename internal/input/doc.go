// Package input provides the declarative prompt model used by the create
// workflow and the askers that answer it.
//
// # Overview
//
// A Prompt describes one question: its kind (list, checkbox, confirm or
// input), its choices and an optional When predicate. Prompts are answered
// strictly in order by Run, which re-evaluates each predicate against the
// answers collected so far immediately before asking.
//
//	answers, err := input.Run(ctx, input.NewTerminalAsker(), prompts)
//
// # Askers
//
// TerminalAsker renders each prompt with bubbletea and lipgloss. It refuses
// to run when stdin is not a terminal and returns ErrNotInteractive instead.
//
// ScriptedAsker answers from a fixed map and falls back to each prompt's
// default. It is used in tests and by non-interactive flows.
package input
