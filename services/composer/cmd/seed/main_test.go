package main

import (
	"context"
	"testing"

	"post-composer/pkg/logger"
	"post-composer/services/composer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryPostLists struct {
	lists map[string][]entity.Post
}

func (r *memoryPostLists) GetByUserID(ctx context.Context, userID string) (*entity.PostList, error) {
	posts, ok := r.lists[userID]
	if !ok {
		return nil, entity.ErrPostListNotFound
	}
	return &entity.PostList{UserID: userID, Posts: posts}, nil
}

func (r *memoryPostLists) Create(ctx context.Context, userID string) error {
	if _, ok := r.lists[userID]; !ok {
		r.lists[userID] = []entity.Post{}
	}
	return nil
}

func (r *memoryPostLists) AppendPost(ctx context.Context, userID string, expectedLen int, post *entity.Post) error {
	if len(r.lists[userID]) != expectedLen {
		return entity.ErrPostListConflict
	}
	r.lists[userID] = append(r.lists[userID], *post)
	return nil
}

func TestSeedPostList_NumbersSequentially(t *testing.T) {
	repo := &memoryPostLists{lists: map[string][]entity.Post{}}

	require.NoError(t, seedPostList(context.Background(), repo, nil, "images/", "demo", 3, logger.New()))

	posts := repo.lists["demo"]
	require.Len(t, posts, 3)
	for i, post := range posts {
		assert.Equal(t, i+1, post.PostNumber)
		assert.Equal(t, "demo", post.UserID)
		assert.Nil(t, post.Media)
	}
	assert.Equal(t, "Demo post #1", posts[0].Title)
}

func TestSeedPostList_ContinuesExistingList(t *testing.T) {
	repo := &memoryPostLists{lists: map[string][]entity.Post{
		"demo": {{PostNumber: 1}, {PostNumber: 2}},
	}}

	require.NoError(t, seedPostList(context.Background(), repo, nil, "images/", "demo", 2, logger.New()))

	posts := repo.lists["demo"]
	require.Len(t, posts, 4)
	assert.Equal(t, 3, posts[2].PostNumber)
	assert.Equal(t, 4, posts[3].PostNumber)
}
