package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"blog-server/eventbus"
	"blog-server/events"
	"blog-server/models"
	"blog-server/services/storetest"
)

func postEventMessage(t *testing.T, typ events.EventType, p models.Post) (eventbus.Event, events.PostEvent) {
	t.Helper()
	pe := events.NewPostEvent(typ, p)
	msg, err := eventbus.NewJSONEvent(pe.ID, string(pe.Type), pe)
	require.NoError(t, err)
	return msg, pe
}

func TestActivityRecordsEvent(t *testing.T) {
	store := storetest.NewActivityStore()
	svc := NewActivityService(store)
	ctx := context.Background()
	post := models.Post{ID: primitive.NewObjectID(), Title: "Hi", Category: "Tech", Status: "draft"}

	msg, pe := postEventMessage(t, events.PostCreated, post)
	require.NoError(t, svc.HandleEvent(ctx, msg))

	got, err := svc.ListForPost(ctx, post.ID.Hex(), 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pe.ID, got[0].EventID)
	assert.Equal(t, "post.created", got[0].Type)
	assert.Equal(t, post.ID.Hex(), got[0].PostID)
	assert.Equal(t, "Hi", got[0].Title)
	assert.True(t, pe.Timestamp.Equal(got[0].OccurredAt))

	// redelivery is not an error
	require.NoError(t, svc.HandleEvent(ctx, msg))
	assert.Equal(t, 1, store.Len())
}

func TestActivityRejectsBadEvents(t *testing.T) {
	store := storetest.NewActivityStore()
	svc := NewActivityService(store)
	ctx := context.Background()

	msg, _ := postEventMessage(t, "post.archived", models.Post{ID: primitive.NewObjectID()})
	assert.True(t, eventbus.IsPermanent(svc.HandleEvent(ctx, msg)))

	noID, err := eventbus.NewJSONEvent("x", "post.created", events.PostEvent{BaseEvent: events.BaseEvent{ID: "x", Type: events.PostCreated}})
	require.NoError(t, err)
	assert.True(t, eventbus.IsPermanent(svc.HandleEvent(ctx, noID)))

	assert.True(t, eventbus.IsPermanent(svc.HandleEvent(ctx, eventbus.Event{ID: "y", Payload: []byte(`{`)})))
	assert.Zero(t, store.Len())
}

func TestActivityStoreFailure(t *testing.T) {
	svc := NewActivityService(&storetest.ActivityStore{Err: errors.New("write failed")})
	msg, _ := postEventMessage(t, events.PostDeleted, models.Post{ID: primitive.NewObjectID()})

	err := svc.HandleEvent(context.Background(), msg)
	assert.EqualError(t, err, "write failed")
	assert.False(t, eventbus.IsPermanent(err))
}

func TestActivityListForPost(t *testing.T) {
	store := storetest.NewActivityStore()
	svc := NewActivityService(store)
	ctx := context.Background()
	postID := primitive.NewObjectID().Hex()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, typ := range []string{"post.created", "post.updated", "post.deleted"} {
		_, err := store.Record(ctx, &models.PostActivity{
			EventID:    typ,
			Type:       typ,
			PostID:     postID,
			OccurredAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := store.Record(ctx, &models.PostActivity{EventID: "other", Type: "post.created", PostID: primitive.NewObjectID().Hex()})
	require.NoError(t, err)

	got, err := svc.ListForPost(ctx, postID, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "post.deleted", got[0].Type)
	assert.Equal(t, "post.updated", got[1].Type)

	_, err = svc.ListForPost(ctx, "nope", 10)
	assert.ErrorIs(t, err, ErrInvalidID)
}
