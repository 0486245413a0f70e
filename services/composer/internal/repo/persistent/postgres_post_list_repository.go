package persistent

import (
	"context"
	"errors"
	"fmt"

	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postgresPostListRepository struct {
	db *gorm.DB
}

func NewPostgresPostListRepository(db *gorm.DB) PostListRepository {
	return &postgresPostListRepository{db: db}
}

func (r *postgresPostListRepository) GetByUserID(ctx context.Context, userID string) (*entity.PostList, error) {
	var list model.PostListModel
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, entity.ErrPostListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post list: %w", err)
	}

	var records []model.PostRecordModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("post_number ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read posts: %w", err)
	}

	result := &entity.PostList{UserID: userID, Posts: make([]entity.Post, len(records))}
	for i := range records {
		result.Posts[i] = RecordToPostEntity(&records[i])
	}
	return result, nil
}

func (r *postgresPostListRepository) Create(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.PostListModel{UserID: userID}).Error
	if err != nil {
		return fmt.Errorf("failed to create post list: %w", err)
	}
	return nil
}

func (r *postgresPostListRepository) AppendPost(ctx context.Context, userID string, expectedLen int, post *entity.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.PostRecordModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if int(count) != expectedLen {
			return entity.ErrPostListConflict
		}
		return tx.Create(ToPostRecordModel(post)).Error
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrPostListConflict), errors.Is(err, gorm.ErrDuplicatedKey):
		// Two transactions may both see expectedLen; the unique (user_id, post_number) index settles it
		return entity.ErrPostListConflict
	default:
		return fmt.Errorf("failed to append post: %w", err)
	}
}
