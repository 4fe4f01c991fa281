package service

import (
	"context"
	"testing"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()
	a := seedProfile(t, db, "alice", model.RoleMember)
	b := seedProfile(t, db, "bob", model.RoleMember)

	changed, err := svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	// 重复关注不报错，只是没变化
	changed, err = svc.Follow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	following, err := svc.IsFollowing(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	// 方向性：b 并没有关注 a
	following, err = svc.IsFollowing(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, following)

	changed, err = svc.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	changed, err = svc.Unfollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestFollowValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewFollowService(db)
	ctx := context.Background()
	a := seedProfile(t, db, "alice", model.RoleMember)

	_, err := svc.Follow(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Follow(ctx, 0, a.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	_, err = svc.Unfollow(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
