package metabox

import (
	"io/fs"

	"github.com/goliatone/go-metabox/pkg/render"
)

// TemplatesFS exposes the built-in component templates (image picker, rich
// text editor) so callers can copy or override them.
func TemplatesFS() fs.FS {
	return render.TemplatesFS()
}

// AssetsFS exposes the browser scripts the default components reference, so
// applications can serve them without a build step.
//
// Typical mount:
//
//	mux.Handle("/assets/metabox/",
//	  http.StripPrefix("/assets/metabox/",
//	    http.FileServerFS(metabox.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	return render.AssetsFS()
}
