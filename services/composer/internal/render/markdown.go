package render

import (
	"github.com/russross/blackfriday/v2"
)

var htmlParams = blackfriday.HTMLRendererParameters{
	// Raw HTML in the source is dropped rather than passed through to the preview
	Flags: blackfriday.SkipHTML,
}

// Markdown renders markdown source to an HTML fragment for the live preview.
func Markdown(src string) string {
	renderer := blackfriday.NewHTMLRenderer(htmlParams)
	out := blackfriday.Run(
		[]byte(src),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(blackfriday.CommonExtensions),
	)
	return string(out)
}
