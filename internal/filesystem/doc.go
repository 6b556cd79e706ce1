// Package filesystem walks template trees with common ignore rules.
//
// Templates are read through fs.FS so plugins can ship them embedded:
//
//	//go:embed template
//	var templates embed.FS
//
//	files, err := filesystem.ListFiles(templates, "template", filesystem.WalkOptions{})
//
// Files whose name starts with an underscore are dotfiles in the generated
// project: "_gitignore" is written as ".gitignore". A double underscore
// keeps one literal underscore.
package filesystem
