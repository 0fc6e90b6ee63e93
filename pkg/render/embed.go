package render

import (
	"embed"
	"io/fs"

	rendertemplate "github.com/goliatone/go-metabox/pkg/render/template"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

//go:embed assets/*.js
var embeddedAssets embed.FS

// TemplatesFS exposes the built-in component templates so callers can copy and
// override them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// AssetsFS exposes the browser scripts components declare, rooted so that
// ImagePickerScript's base name resolves.
//
// Typical mount:
//
//	mux.Handle("/assets/metabox/",
//	  http.StripPrefix("/assets/metabox/",
//	    http.FileServerFS(render.AssetsFS()),
//	  ),
//	)
func AssetsFS() fs.FS {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err != nil {
		return embeddedAssets
	}
	return sub
}

// NewTemplateEngine returns an engine over the built-in templates. Options are
// applied after the embedded source, so WithBaseDir can shadow individual
// templates.
func NewTemplateEngine(opts ...rendertemplate.Option) (*rendertemplate.Engine, error) {
	all := make([]rendertemplate.Option, 0, len(opts)+1)
	all = append(all, rendertemplate.WithFS(TemplatesFS()))
	all = append(all, opts...)
	return rendertemplate.NewEngine(all...)
}
