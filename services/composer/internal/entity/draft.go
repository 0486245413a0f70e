package entity

import "time"

type ContentMode string

const (
	ModeRichText ContentMode = "rich_text"
	ModeMarkdown ContentMode = "markdown"
)

// Draft is the editable composer state of one session.
type Draft struct {
	SessionID string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Media     *string   `json:"media"`
	Markdown  bool      `json:"markdown"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func NewDraft(sessionID string) *Draft {
	return &Draft{SessionID: sessionID}
}

func (d *Draft) Mode() ContentMode {
	if d.Markdown {
		return ModeMarkdown
	}
	return ModeRichText
}

// Reset clears what a successful submit consumes. The mode flag survives.
func (d *Draft) Reset() {
	d.Title = ""
	d.Content = ""
	d.Media = nil
}
