package entity

import "time"

// Post is one record in a user's post list. Records are append-only.
type Post struct {
	PostNumber int       `json:"postNumber"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Media      *string   `json:"media"`
	CreatedAt  time.Time `json:"createdAt"`
	UserID     string    `json:"userId"`
	Advert     string    `json:"advert"`
}

// PostList is the per-user document holding posts in append order.
type PostList struct {
	UserID string `json:"userId"`
	Posts  []Post `json:"posts"`
}

func (l *PostList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Posts)
}
