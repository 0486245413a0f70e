package persistent

import (
	"context"

	"post-composer/services/composer/internal/entity"
)

// PostListRepository stores one ordered post list per user.
//
// AppendPost only writes when the stored list still holds expectedLen posts;
// otherwise it returns entity.ErrPostListConflict and leaves the list as is.
type PostListRepository interface {
	GetByUserID(ctx context.Context, userID string) (*entity.PostList, error)
	Create(ctx context.Context, userID string) error
	AppendPost(ctx context.Context, userID string, expectedLen int, post *entity.Post) error
}
