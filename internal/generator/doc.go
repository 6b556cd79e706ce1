// Package generator runs the selected plugins' generators against an
// in-memory project and writes the result to disk.
//
// # Overview
//
// The Engine works in three phases:
//
//  1. Apply: each plugin's Generator is called in order with an API bound to
//     that plugin. Generators extend the package fields and add, modify or
//     delete files in a shared FileTree. A failing or panicking generator
//     stops the run with a *PluginApplyError naming the plugin.
//  2. ExtractConfig (optional): well-known tool configuration is moved out of
//     package.json into dedicated files such as babel.config.js.
//  3. Flush: package.json is encoded and every file is written under the
//     project root in one Transaction. A failed write rolls the batch back
//     and returns a *FilesystemWriteError.
//
// # Merge rules
//
// Package fields and structured files merge the same way: objects merge key
// by key, scalars and arrays are replaced by the later write.
//
// # Templates
//
// API.Render copies a template tree from an fs.FS. Files ending in .tmpl are
// rendered with text/template and lose the suffix; everything else is copied
// verbatim. See package filesystem for name mapping.
package generator
