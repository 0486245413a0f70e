package persistent

import (
	"context"
	"errors"
	"fmt"

	"post-composer/services/composer/internal/entity"
	"post-composer/services/composer/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const PostsCollection = "posts"

type mongoPostListRepository struct {
	collection *mongo.Collection
}

func NewMongoPostListRepository(db *mongo.Database) PostListRepository {
	return &mongoPostListRepository{collection: db.Collection(PostsCollection)}
}

func (r *mongoPostListRepository) GetByUserID(ctx context.Context, userID string) (*entity.PostList, error) {
	var doc model.PostListDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, entity.ErrPostListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post list: %w", err)
	}
	return ToPostListEntity(&doc), nil
}

func (r *mongoPostListRepository) Create(ctx context.Context, userID string) error {
	_, err := r.collection.InsertOne(ctx, model.PostListDocument{
		UserID: userID,
		Posts:  []model.PostDocument{},
	})
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("failed to create post list: %w", err)
	}
	return nil
}

func (r *mongoPostListRepository) AppendPost(ctx context.Context, userID string, expectedLen int, post *entity.Post) error {
	filter := bson.M{
		"_id":   userID,
		"posts": bson.M{"$size": expectedLen},
	}
	update := bson.M{
		"$push": bson.M{"posts": ToPostDocument(post)},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to append post: %w", err)
	}
	if result.MatchedCount == 0 {
		return entity.ErrPostListConflict
	}
	return nil
}
