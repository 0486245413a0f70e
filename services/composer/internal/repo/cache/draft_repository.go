package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"post-composer/services/composer/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	fieldTitle     = "title"
	fieldContent   = "content"
	fieldMedia     = "media"
	fieldHasMedia  = "has_media"
	fieldMarkdown  = "markdown"
	fieldUpdatedAt = "updated_at"
)

// DraftRepository keeps composer drafts keyed by session.
type DraftRepository interface {
	// Get returns the stored draft, or an empty one when the session has none.
	Get(ctx context.Context, sessionID string) (*entity.Draft, error)
	// SetMedia replaces only the media reference of a draft.
	SetMedia(ctx context.Context, sessionID string, media *string) error
	// Patch overwrites only the fields set in patch and returns the stored draft.
	Patch(ctx context.Context, sessionID string, patch DraftPatch) (*entity.Draft, error)
}

// DraftPatch names the draft fields a write touches. Nil fields keep their
// stored value; Media is applied only when SetMedia is true so it can be cleared.
type DraftPatch struct {
	Title    *string
	Content  *string
	Media    *string
	SetMedia bool
	Markdown *bool
}

type redisDraftRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDraftRepository(client *redis.Client, ttl time.Duration) DraftRepository {
	return &redisDraftRepository{client: client, ttl: ttl}
}

func draftKey(sessionID string) string {
	return fmt.Sprintf("composer:draft:%s", sessionID)
}

func (r *redisDraftRepository) Get(ctx context.Context, sessionID string) (*entity.Draft, error) {
	result, err := r.client.HGetAll(ctx, draftKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}
	return draftFromHash(sessionID, result), nil
}

func (r *redisDraftRepository) SetMedia(ctx context.Context, sessionID string, media *string) error {
	if _, err := r.Patch(ctx, sessionID, DraftPatch{Media: media, SetMedia: true}); err != nil {
		return fmt.Errorf("failed to set draft media: %w", err)
	}
	return nil
}

func (r *redisDraftRepository) Patch(ctx context.Context, sessionID string, patch DraftPatch) (*entity.Draft, error) {
	key := draftKey(sessionID)
	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, patchToHash(patch, time.Now()))
	pipe.Expire(ctx, key, r.ttl)
	stored := pipe.HGetAll(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to patch draft: %w", err)
	}
	return draftFromHash(sessionID, stored.Val()), nil
}

func patchToHash(patch DraftPatch, now time.Time) map[string]interface{} {
	fields := map[string]interface{}{fieldUpdatedAt: now.Unix()}
	if patch.Title != nil {
		fields[fieldTitle] = *patch.Title
	}
	if patch.Content != nil {
		fields[fieldContent] = *patch.Content
	}
	if patch.SetMedia {
		for k, v := range mediaFields(patch.Media) {
			fields[k] = v
		}
	}
	if patch.Markdown != nil {
		fields[fieldMarkdown] = boolFlag(*patch.Markdown)
	}
	return fields
}

func mediaFields(media *string) map[string]interface{} {
	if media == nil {
		return map[string]interface{}{fieldMedia: "", fieldHasMedia: "0"}
	}
	return map[string]interface{}{fieldMedia: *media, fieldHasMedia: "1"}
}

func draftFromHash(sessionID string, hash map[string]string) *entity.Draft {
	draft := entity.NewDraft(sessionID)
	if len(hash) == 0 {
		return draft
	}

	draft.Title = hash[fieldTitle]
	draft.Content = hash[fieldContent]
	draft.Markdown = hash[fieldMarkdown] == "1"
	if hash[fieldHasMedia] == "1" {
		media := hash[fieldMedia]
		draft.Media = &media
	}
	if ts, err := strconv.ParseInt(hash[fieldUpdatedAt], 10, 64); err == nil {
		draft.UpdatedAt = time.Unix(ts, 0)
	}
	return draft
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
