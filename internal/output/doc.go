// Package output provides styled terminal output for the hatch CLI.
//
// # Usage
//
//	output.Success("Created project: myapp")
//	output.Info("Next steps:")
//	output.Step("cd myapp")
//	output.Error("install failed: exit status 1")
//
// # Verbose Mode
//
// The root command enables verbose output from its --verbose flag:
//
//	output.SetVerbose(true)
//	output.Verbose("Resolved 3 plugins")
//
// # Styling
//
// Styles come from lipgloss and stay consistent across commands:
//
//   - Success: green bold
//   - Error: red bold, written to stderr
//   - Warn: yellow bold
//   - Info: cyan
//   - Step: indented gray
//   - Verbose: gray (when enabled)
package output
