package generator

import "fmt"

// PluginApplyError reports the plugin whose generator failed.
type PluginApplyError struct {
	PluginID string
	Err      error
}

func (e *PluginApplyError) Error() string {
	return fmt.Sprintf("plugin %s failed: %v", e.PluginID, e.Err)
}

func (e *PluginApplyError) Unwrap() error {
	return e.Err
}

// FilesystemWriteError reports a file that could not be written.
type FilesystemWriteError struct {
	Path string
	Err  error
}

func (e *FilesystemWriteError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

func (e *FilesystemWriteError) Unwrap() error {
	return e.Err
}
