package model

import "time"

// PostListDocument is the per-user document in the "posts" collection.
type PostListDocument struct {
	UserID string         `bson:"_id"`
	Posts  []PostDocument `bson:"posts"`
}

type PostDocument struct {
	PostNumber int       `bson:"postNumber"`
	Title      string    `bson:"title"`
	Content    string    `bson:"content"`
	Media      *string   `bson:"media"`
	CreatedAt  time.Time `bson:"createdAt"`
	UserID     string    `bson:"userId"`
	Advert     string    `bson:"advert"`
}
