// Package resources embeds the HTML views, static assets and the default
// menu into the binary.
package resources

import (
	"embed"
	"io/fs"
)

//go:embed views/*.html
var views embed.FS

//go:embed public
var public embed.FS

//go:embed menu.json
var Menu []byte

// Views holds the page templates, layout.html included.
func Views() fs.FS { return sub(views, "views") }

// Public holds the files served under /public/.
func Public() fs.FS { return sub(public, "public") }

func sub(fsys fs.FS, dir string) fs.FS {
	s, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return s
}
