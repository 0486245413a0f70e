package persistent

import (
	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/model"
)

func ToPostEntity(m *model.PostDocument) entity.Post {
	return entity.Post{
		PostNumber: m.PostNumber,
		Title:      m.Title,
		Content:    m.Content,
		Media:      m.Media,
		CreatedAt:  m.CreatedAt,
		UserID:     m.UserID,
		Advert:     m.Advert,
	}
}

func ToPostDocument(e *entity.Post) model.PostDocument {
	return model.PostDocument{
		PostNumber: e.PostNumber,
		Title:      e.Title,
		Content:    e.Content,
		Media:      e.Media,
		CreatedAt:  e.CreatedAt,
		UserID:     e.UserID,
		Advert:     e.Advert,
	}
}

func ToPostListEntity(m *model.PostListDocument) *entity.PostList {
	if m == nil {
		return nil
	}

	list := &entity.PostList{
		UserID: m.UserID,
		Posts:  make([]entity.Post, len(m.Posts)),
	}
	for i := range m.Posts {
		list.Posts[i] = ToPostEntity(&m.Posts[i])
	}
	return list
}

func RecordToPostEntity(m *model.PostRecordModel) entity.Post {
	return entity.Post{
		PostNumber: m.PostNumber,
		Title:      m.Title,
		Content:    m.Content,
		Media:      m.Media,
		CreatedAt:  m.CreatedAt,
		UserID:     m.UserID,
		Advert:     m.Advert,
	}
}

func ToPostRecordModel(e *entity.Post) *model.PostRecordModel {
	return &model.PostRecordModel{
		UserID:     e.UserID,
		PostNumber: e.PostNumber,
		Title:      e.Title,
		Content:    e.Content,
		Media:      e.Media,
		Advert:     e.Advert,
		CreatedAt:  e.CreatedAt,
	}
}
