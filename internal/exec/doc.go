// Package exec runs external commands (package managers, git) on behalf
// of the create workflow.
//
// An Executor is bound to a working directory and output streams:
//
//	e := exec.NewExecutor(&exec.Options{Dir: root})
//	err := e.Run(ctx, "git", "init")
//
// RunWithSpinner hides the child's output behind a spinner and replays it
// only when the command fails. Missing binaries produce a NotFoundError
// carrying an install hint.
package exec
