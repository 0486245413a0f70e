package entity

// DefaultImageToolbar lists the image actions offered by the rich-text editor.
var DefaultImageToolbar = []string{
	"imageTextAlternative",
	"imageStyle:full",
	"imageStyle:side",
	"resizeImage:50",
	"resizeImage:75",
	"resizeImage:original",
	"cropImage",
}

type EditorConfig struct {
	UploadURL string      `json:"uploadUrl"`
	Image     ImageConfig `json:"image"`
}

type ImageConfig struct {
	Toolbar []string `json:"toolbar"`
}
