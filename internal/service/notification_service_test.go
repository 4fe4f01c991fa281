package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkReadOwnershipScoped(t *testing.T) {
	db := newTestDB(t)
	svc := NewNotificationService(db)
	commentSvc := NewCommentService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	commenter := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	_, err := commentSvc.CreateComment(commenter.ID, post.ID, "hey", nil)
	require.NoError(t, err)

	list, err := svc.List(author.ID, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)

	// 别人的通知标不了已读，表现为 NotFound
	err = svc.MarkRead(commenter.ID, list[0].ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.MarkRead(author.ID, list[0].ID))
	list, err = svc.List(author.ID, 10)
	require.NoError(t, err)
	assert.True(t, list[0].Read)
}

func TestOutboxRelayerDrain(t *testing.T) {
	db := newTestDB(t)
	commentSvc := NewCommentService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	commenter := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	_, err := commentSvc.CreateComment(commenter.ID, post.ID, "hey", nil)
	require.NoError(t, err)

	var sent []uint64
	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.NotificationOutbox) error {
		sent = append(sent, ob.NotificationID)
		return nil
	})
	relayer.drainOnce(context.Background())

	require.Len(t, sent, 1)
	var rows []model.NotificationOutbox
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.EqualValues(t, 1, rows[0].Status)

	// 已投递的不会再被捞出来
	relayer.drainOnce(context.Background())
	assert.Len(t, sent, 1)
}

func TestOutboxRelayerRetryUntilFailed(t *testing.T) {
	db := newTestDB(t)
	commentSvc := NewCommentService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	commenter := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	_, err := commentSvc.CreateComment(commenter.ID, post.ID, "hey", nil)
	require.NoError(t, err)

	relayer := NewOutboxRelayer(db, func(ctx context.Context, ob *model.NotificationOutbox) error {
		return errors.New("broker down")
	})
	relayer.maxRetry = 2

	// 重试次数打满后标记 failed，不再投递
	relayer.drainOnce(context.Background())
	relayer.drainOnce(context.Background())

	var row model.NotificationOutbox
	require.NoError(t, db.First(&row).Error)
	assert.EqualValues(t, 2, row.Status)
	assert.Equal(t, 2, row.Retry)

	relayer.drainOnce(context.Background())
	require.NoError(t, db.First(&row).Error)
	assert.Equal(t, 2, row.Retry)
}
