package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"post-composer/pkg/logger"
	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/extract"
	"post-composer/services/composer/internal/render"
	"post-composer/services/composer/internal/repo/cache"
	"post-composer/services/composer/internal/repo/persistent"
	"post-composer/services/composer/internal/upload"
)

type ComposerUseCase interface {
	GetDraft(ctx context.Context, sessionID string) (*entity.Draft, error)
	UpdateTitle(ctx context.Context, sessionID, title string) (*entity.Draft, error)
	UpdateContent(ctx context.Context, sessionID, content string) (*entity.Draft, error)
	SelectMedia(ctx context.Context, sessionID string, media *string) (*entity.Draft, error)
	ToggleMode(ctx context.Context, sessionID string) (*entity.Draft, error)
	Preview(ctx context.Context, sessionID string) (string, error)
	RenderPreview(draft *entity.Draft) (string, error)
	EditorConfig() entity.EditorConfig
	UploadImage(ctx context.Context, sessionID string, loader upload.Loader) (*upload.Result, error)
	Submit(ctx context.Context, sessionID, userID string) (*entity.Post, error)
}

// EventPublisher announces stored posts to downstream consumers.
type EventPublisher interface {
	PublishPostCreated(event map[string]interface{}) error
}

type Options struct {
	UploadPrefix string
	UploadURL    string
}

type composerUseCase struct {
	postLists persistent.PostListRepository
	drafts    cache.DraftRepository
	storage   upload.Storage
	publisher EventPublisher
	logger    *logger.Logger
	opts      Options
	now       func() time.Time
}

func NewComposerUseCase(
	postLists persistent.PostListRepository,
	drafts cache.DraftRepository,
	storage upload.Storage,
	publisher EventPublisher,
	logger *logger.Logger,
	opts Options,
) ComposerUseCase {
	return &composerUseCase{
		postLists: postLists,
		drafts:    drafts,
		storage:   storage,
		publisher: publisher,
		logger:    logger,
		opts:      opts,
		now:       time.Now,
	}
}

func (uc *composerUseCase) GetDraft(ctx context.Context, sessionID string) (*entity.Draft, error) {
	return uc.drafts.Get(ctx, sessionID)
}

func (uc *composerUseCase) UpdateTitle(ctx context.Context, sessionID, title string) (*entity.Draft, error) {
	return uc.drafts.Patch(ctx, sessionID, cache.DraftPatch{Title: &title})
}

// UpdateContent stores new content. In rich-text mode this is an editor change
// event, so title and media are re-derived from the HTML and overwrite
// whatever the draft held.
func (uc *composerUseCase) UpdateContent(ctx context.Context, sessionID, content string) (*entity.Draft, error) {
	current, err := uc.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	patch := cache.DraftPatch{Content: &content}
	if !current.Markdown {
		meta := extract.Extract(content)
		patch.Title = meta.Title
		if meta.Media != nil {
			patch.Media = meta.Media
			patch.SetMedia = true
		}
	}
	return uc.drafts.Patch(ctx, sessionID, patch)
}

func (uc *composerUseCase) SelectMedia(ctx context.Context, sessionID string, media *string) (*entity.Draft, error) {
	return uc.drafts.Patch(ctx, sessionID, cache.DraftPatch{Media: media, SetMedia: true})
}

// ToggleMode flips between markdown and rich-text. Content is kept verbatim.
func (uc *composerUseCase) ToggleMode(ctx context.Context, sessionID string) (*entity.Draft, error) {
	current, err := uc.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	markdown := !current.Markdown
	return uc.drafts.Patch(ctx, sessionID, cache.DraftPatch{Markdown: &markdown})
}

func (uc *composerUseCase) Preview(ctx context.Context, sessionID string) (string, error) {
	draft, err := uc.drafts.Get(ctx, sessionID)
	if err != nil {
		return "", err
	}
	return uc.RenderPreview(draft)
}

// RenderPreview renders an already loaded draft.
func (uc *composerUseCase) RenderPreview(draft *entity.Draft) (string, error) {
	if !draft.Markdown {
		return "", entity.ErrNotMarkdownMode
	}
	return render.Markdown(draft.Content), nil
}

func (uc *composerUseCase) EditorConfig() entity.EditorConfig {
	toolbar := make([]string, len(entity.DefaultImageToolbar))
	copy(toolbar, entity.DefaultImageToolbar)
	return entity.EditorConfig{
		UploadURL: uc.opts.UploadURL,
		Image:     entity.ImageConfig{Toolbar: toolbar},
	}
}

// AdapterFactory is what the editor plugin registers for a session: every
// image insert gets its own adapter, and every finished upload becomes the
// session's media.
func (uc *composerUseCase) AdapterFactory(sessionID string) upload.Factory {
	sink := func(ctx context.Context, url string) error {
		return uc.drafts.SetMedia(ctx, sessionID, &url)
	}
	onSinkError := func(url string, err error) {
		uc.logger.Warn("[UPLOAD] Uploaded %s but could not mirror it into draft %s: %v", url, sessionID, err)
	}
	return upload.NewFactory(uc.storage, uc.opts.UploadPrefix, sink, onSinkError)
}

func (uc *composerUseCase) UploadImage(ctx context.Context, sessionID string, loader upload.Loader) (*upload.Result, error) {
	result, err := uc.AdapterFactory(sessionID)(loader).Upload(ctx)
	if err != nil {
		uc.logger.Error("[UPLOAD] Upload failed for session %s: %v", sessionID, err)
		return nil, err
	}
	uc.logger.Info("[UPLOAD] Stored image for session %s at %s", sessionID, result.Default)
	return result, nil
}

// Submit appends the session's draft to the user's post list.
//
// The post number is read-then-computed; the append only succeeds while the
// list still has the length that was read, so of two racing submits exactly
// one is stored and the other gets entity.ErrPostListConflict. Failures leave
// the draft untouched.
func (uc *composerUseCase) Submit(ctx context.Context, sessionID, userID string) (*entity.Post, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}

	draft, err := uc.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	existing := 0
	list, err := uc.postLists.GetByUserID(ctx, userID)
	switch {
	case errors.Is(err, entity.ErrPostListNotFound):
		if err := uc.postLists.Create(ctx, userID); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		existing = list.Len()
	}

	post := &entity.Post{
		PostNumber: existing + 1,
		Title:      draft.Title,
		Content:    draft.Content,
		Media:      draft.Media,
		CreatedAt:  uc.now(),
		UserID:     userID,
		Advert:     "",
	}

	if err := uc.postLists.AppendPost(ctx, userID, existing, post); err != nil {
		if errors.Is(err, entity.ErrPostListConflict) {
			uc.logger.Warn("[SUBMIT] Post list of user %s changed before post %d was stored", userID, post.PostNumber)
			return nil, err
		}
		return nil, fmt.Errorf("failed to store post: %w", err)
	}

	uc.logger.Info("[SUBMIT] Stored post %d for user %s", post.PostNumber, userID)

	draft.Reset()
	reset := cache.DraftPatch{Title: &draft.Title, Content: &draft.Content, Media: draft.Media, SetMedia: true}
	if _, err := uc.drafts.Patch(ctx, sessionID, reset); err != nil {
		// The post is stored; a stale draft only means the form is not cleared
		uc.logger.Error("[SUBMIT] Failed to reset draft %s: %v", sessionID, err)
	}

	if uc.publisher != nil {
		go uc.publishPostCreated(post)
	}

	return post, nil
}

func (uc *composerUseCase) publishPostCreated(post *entity.Post) {
	event := map[string]interface{}{
		"type":        "post_created",
		"user_id":     post.UserID,
		"post_number": post.PostNumber,
		"title":       post.Title,
		"created_at":  post.CreatedAt.UTC().Format(time.RFC3339),
	}

	if err := uc.publisher.PublishPostCreated(event); err != nil {
		uc.logger.Error("[RABBITMQ] Failed to publish post_created for user %s, post %d: %v", post.UserID, post.PostNumber, err)
	}
}
