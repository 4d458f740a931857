package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"blog-server/models"
)

const postsNS = "blog.posts"

func postDoc(id primitive.ObjectID, title string, views int64) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: title},
		{Key: "content", Value: "body of " + title},
		{Key: "excerpt", Value: "body of " + title},
		{Key: "author", Value: "Anonymous"},
		{Key: "category", Value: "General"},
		{Key: "tags", Value: bson.A{"go"}},
		{Key: "status", Value: "published"},
		{Key: "viewCount", Value: views},
	}
}

func TestPostRepositoryList(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns page and total", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		id1, id2 := primitive.NewObjectID(), primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(12)}}),
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch, postDoc(id1, "first", 0), postDoc(id2, "second", 3)),
		)

		items, total, err := repo.List(context.Background(), PostFilter{Page: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(12), total)
		require.Len(t, items, 2)
		assert.Equal(t, id1, items[0].ID)
		assert.Equal(t, "second", items[1].Title)
		assert.Equal(t, int64(3), items[1].ViewCount)
	})

	mt.Run("empty result is an empty slice", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch),
			mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch),
		)

		items, total, err := repo.List(context.Background(), PostFilter{Page: 1, Limit: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestPostRepositoryFindByIDNotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("no documents", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, postsNS, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostRepositoryIncrementViewCount(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns updated document", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: postDoc(id, "hello", 5)}))

		p, err := repo.IncrementViewCount(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, id, p.ID)
		assert.Equal(t, int64(5), p.ViewCount)
	})

	mt.Run("missing post", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		_, err := repo.IncrementViewCount(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestPostRepositoryInsertAssignsID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		p := &models.Post{Title: "t", Content: "c"}
		require.NoError(t, repo.Insert(context.Background(), p))
		assert.False(t, p.ID.IsZero())
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.UpdatedAt)
		assert.NotNil(t, p.Tags)
	})
}

func TestPostRepositoryDeleteByID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deleted", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))
		assert.NoError(t, repo.DeleteByID(context.Background(), primitive.NewObjectID()))
	})

	mt.Run("nothing deleted", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))
		assert.ErrorIs(t, repo.DeleteByID(context.Background(), primitive.NewObjectID()), ErrNotFound)
	})
}

func TestPostRepositoryDistinctCategoriesSorted(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("distinct", func(mt *mtest.T) {
		repo := NewPostRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{"Travel", "General", "Go"}}))

		got, err := repo.DistinctCategories(context.Background(), models.PostStatusPublished)
		require.NoError(t, err)
		assert.Equal(t, []string{"General", "Go", "Travel"}, got)
	})
}
