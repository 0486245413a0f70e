package persistent

import (
	"context"
	"errors"
	"testing"
	"time"

	"post-composer/services/composer/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func samplePost(number int) *entity.Post {
	return &entity.Post{
		PostNumber: number,
		Title:      "Hello",
		Content:    "<h2>Hello</h2>",
		CreatedAt:  time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		UserID:     "user-1",
	}
}

// sizeFilter reads posts.$size from the first update statement of a command.
func sizeFilter(t *testing.T, cmd bson.Raw) int64 {
	t.Helper()
	value, err := cmd.LookupErr("updates", "0", "q", "posts", "$size")
	require.NoError(t, err)
	if n, ok := value.Int32OK(); ok {
		return int64(n)
	}
	n, ok := value.Int64OK()
	require.True(t, ok, "posts.$size has type %s", value.Type)
	return n
}

func TestMongoPostListRepository_AppendPost(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("stored when length matches", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		repo := NewMongoPostListRepository(mt.DB)

		err := repo.AppendPost(context.Background(), "user-1", 2, samplePost(3))

		require.NoError(mt, err)
		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)
		assert.Equal(mt, int64(2), sizeFilter(mt.T, started.Command))

		id, err := started.Command.LookupErr("updates", "0", "q", "_id")
		require.NoError(mt, err)
		assert.Equal(mt, "user-1", id.StringValue())

		number, err := started.Command.LookupErr("updates", "0", "u", "$push", "posts", "postNumber")
		require.NoError(mt, err)
		assert.EqualValues(mt, 3, number.AsInt64())
	})

	mt.Run("conflict when nothing matched", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))
		repo := NewMongoPostListRepository(mt.DB)

		err := repo.AppendPost(context.Background(), "user-1", 1, samplePost(2))

		assert.ErrorIs(mt, err, entity.ErrPostListConflict)
	})

	mt.Run("server error is wrapped", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Name:    "BadValue",
			Message: "unknown operator",
		}))
		repo := NewMongoPostListRepository(mt.DB)

		err := repo.AppendPost(context.Background(), "user-1", 0, samplePost(1))

		require.Error(mt, err)
		assert.False(mt, errors.Is(err, entity.ErrPostListConflict))
		assert.Contains(mt, err.Error(), "failed to append post")
	})
}

func TestMongoPostListRepository_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("inserts empty list", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewMongoPostListRepository(mt.DB)

		require.NoError(mt, repo.Create(context.Background(), "user-1"))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "insert", started.CommandName)
		posts, err := started.Command.LookupErr("documents", "0", "posts")
		require.NoError(mt, err)
		values, err := posts.Array().Values()
		require.NoError(mt, err)
		assert.Empty(mt, values)
	})

	mt.Run("existing list is not an error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: posts index: _id_",
		}))
		repo := NewMongoPostListRepository(mt.DB)

		assert.NoError(mt, repo.Create(context.Background(), "user-1"))
	})

	mt.Run("other write errors surface", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))
		repo := NewMongoPostListRepository(mt.DB)

		err := repo.Create(context.Background(), "user-1")

		assert.ErrorContains(mt, err, "failed to create post list")
	})
}

func TestMongoPostListRepository_GetByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("missing list", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + PostsCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewMongoPostListRepository(mt.DB)

		list, err := repo.GetByUserID(context.Background(), "user-1")

		assert.Nil(mt, list)
		assert.ErrorIs(mt, err, entity.ErrPostListNotFound)
	})

	mt.Run("decodes posts in order", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + PostsCollection
		created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "user-1"},
			{Key: "posts", Value: bson.A{
				bson.D{{Key: "postNumber", Value: 1}, {Key: "title", Value: "First"}, {Key: "content", Value: "a"}, {Key: "media", Value: nil}, {Key: "createdAt", Value: created}, {Key: "userId", Value: "user-1"}, {Key: "advert", Value: ""}},
				bson.D{{Key: "postNumber", Value: 2}, {Key: "title", Value: "Second"}, {Key: "content", Value: "b"}, {Key: "media", Value: "https://cdn.test/b.png"}, {Key: "createdAt", Value: created}, {Key: "userId", Value: "user-1"}, {Key: "advert", Value: ""}},
			}},
		}))
		repo := NewMongoPostListRepository(mt.DB)

		list, err := repo.GetByUserID(context.Background(), "user-1")

		require.NoError(mt, err)
		require.Equal(mt, 2, list.Len())
		assert.Equal(mt, "First", list.Posts[0].Title)
		assert.Nil(mt, list.Posts[0].Media)
		assert.Equal(mt, 2, list.Posts[1].PostNumber)
		require.NotNil(mt, list.Posts[1].Media)
		assert.Equal(mt, "https://cdn.test/b.png", *list.Posts[1].Media)
		assert.True(mt, created.Equal(list.Posts[1].CreatedAt))
	})
}
