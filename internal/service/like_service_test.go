package service

import (
	"testing"
	"time"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeToggleInvolution(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	liker := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	res, err := svc.Toggle(liker.ID, model.LikePost, post.ID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.NewCount)

	// 再切一次回到原状态
	res, err = svc.Toggle(liker.ID, model.LikePost, post.ID)
	require.NoError(t, err)
	assert.False(t, res.Liked)
	assert.EqualValues(t, 0, res.NewCount)

	var likeCount int64
	require.NoError(t, db.Model(&model.Like{}).Count(&likeCount).Error)
	assert.Zero(t, likeCount)
}

func TestLikePointsOneDirectional(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	liker := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	// 点赞 3 次、取消 2 次：作者积分只涨不跌，最终 2×3
	for i := 0; i < 3; i++ {
		_, err := svc.Toggle(liker.ID, model.LikePost, post.ID)
		require.NoError(t, err)
		if i < 2 {
			_, err = svc.Toggle(liker.ID, model.LikePost, post.ID)
			require.NoError(t, err)
		}
	}
	assert.EqualValues(t, 3*model.PointsLikeReceived, reloadProfile(t, db, author.ID).Points)

	var entries int64
	require.NoError(t, db.Model(&model.PointsLedgerEntry{}).
		Where("user_id = ? AND action = ?", author.ID, model.ActionLikeReceived).
		Count(&entries).Error)
	assert.EqualValues(t, 3, entries)
}

func TestLikeCommentTarget(t *testing.T) {
	db := newTestDB(t)
	likeSvc := NewLikeService(db)
	commentSvc := NewCommentService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	liker := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	commentID, err := commentSvc.CreateComment(author.ID, post.ID, "hello", nil)
	require.NoError(t, err)

	res, err := likeSvc.Toggle(liker.ID, model.LikeComment, commentID)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.NewCount)

	// 评论点赞不影响帖子计数
	assert.EqualValues(t, 0, reloadPost(t, db, post.ID).LikeCount)

	// 列表里带上 viewer 的点赞状态
	views, err := commentSvc.ListByPost(liker.ID, post.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].LikedByViewer)
	assert.EqualValues(t, 1, views[0].LikeCount)
}

func TestLikeTargetValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewLikeService(db)
	liker := seedProfile(t, db, "bob", model.RoleMember)

	_, err := svc.Toggle(liker.ID, model.LikePost, 999)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = svc.Toggle(liker.ID, model.LikeTarget("space"), 1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Toggle(0, model.LikePost, 1)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestLikeDeletedTarget(t *testing.T) {
	db := newTestDB(t)
	likeSvc := NewLikeService(db)
	postSvc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	liker := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	require.NoError(t, postSvc.DeletePost(author.ID, post.ID))

	// 软删目标对点赞表现为 NotFound
	_, err := likeSvc.Toggle(liker.ID, model.LikePost, post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
