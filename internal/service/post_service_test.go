package service

import (
	"strings"
	"testing"
	"time"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostAwardsPoints(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)

	id, err := svc.CreatePost(author.ID, space.ID, "hello", `{"blocks":[]}`, "<p>hi</p>", nil)
	require.NoError(t, err)
	require.NotZero(t, id)

	post := reloadPost(t, db, id)
	assert.Equal(t, author.ID, post.AuthorID)
	assert.Equal(t, "alice", post.AuthorName)

	// 发帖 +10，档案和流水同时到位
	assert.EqualValues(t, model.PointsPostCreated, reloadProfile(t, db, author.ID).Points)
	var entries []model.PointsLedgerEntry
	require.NoError(t, db.Where("user_id = ?", author.ID).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, model.ActionPostCreated, entries[0].Action)
	assert.EqualValues(t, id, entries[0].SourceID)
}

func TestCreatePostPermission(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	member := seedProfile(t, db, "member", model.RoleMember)
	mod := seedProfile(t, db, "mod", model.RoleModerator)
	space := seedSpace(t, db, model.SpacePublic, model.PostByModerators)

	_, err := svc.CreatePost(member.ID, space.ID, "t", "c", "", nil)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	_, err = svc.CreatePost(mod.ID, space.ID, "t", "c", "", nil)
	assert.NoError(t, err)

	// 未登录不能发帖
	_, err = svc.CreatePost(0, space.ID, "t", "c", "", nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)
}

func TestCreatePostValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)

	_, err := svc.CreatePost(author.ID, space.ID, "t", "", "", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	long := make([]byte, MaxTitleLen+1)
	for i := range long {
		long[i] = 'x'
	}
	_, err = svc.CreatePost(author.ID, space.ID, string(long), "c", "", nil)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// 标题长度按字符数算：200 个汉字虽然 600 字节，但没超限
	_, err = svc.CreatePost(author.ID, space.ID, strings.Repeat("标", MaxTitleLen), "c", "", nil)
	assert.NoError(t, err)

	_, err = svc.CreatePost(author.ID, 999, "t", "c", "", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeletePostLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	other := seedProfile(t, db, "bob", model.RoleMember)
	admin := seedProfile(t, db, "root", model.RoleAdmin)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	// 无权限的人删别人的帖子，拿到的是 NotFound 而不是 Forbidden
	err := svc.DeletePost(other.ID, post.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	require.NoError(t, svc.DeletePost(author.ID, post.ID))
	assert.NotNil(t, reloadPost(t, db, post.ID).DeletedAt)

	// 已删：作者重复删是 Conflict，外人仍是 NotFound
	assert.ErrorIs(t, svc.DeletePost(author.ID, post.ID), apperr.ErrConflict)
	assert.ErrorIs(t, svc.DeletePost(other.ID, post.ID), apperr.ErrNotFound)

	// 恢复是 admin 专属
	assert.ErrorIs(t, svc.RestorePost(author.ID, post.ID), apperr.ErrForbidden)
	require.NoError(t, svc.RestorePost(admin.ID, post.ID))
	assert.Nil(t, reloadPost(t, db, post.ID).DeletedAt)

	// 未删除态恢复是 Conflict
	assert.ErrorIs(t, svc.RestorePost(admin.ID, post.ID), apperr.ErrConflict)
}

func TestDeletedPostHiddenFromList(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	admin := seedProfile(t, db, "root", model.RoleAdmin)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	keep := seedPost(t, db, space.ID, author.ID, time.Now().Add(-time.Minute))
	gone := seedPost(t, db, space.ID, author.ID, time.Now())

	require.NoError(t, svc.DeletePost(author.ID, gone.ID))

	page, err := svc.ListBySpace(0, space.ID, 0, time.Time{}, 10)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, keep.ID, page.Posts[0].ID)

	// 回收站只对 admin 开放
	_, err = svc.ListDeleted(author.ID, 10)
	assert.ErrorIs(t, err, apperr.ErrForbidden)
	deleted, err := svc.ListDeleted(admin.ID, 10)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, gone.ID, deleted[0].ID)
}

func TestPinCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	mod := seedProfile(t, db, "mod", model.RoleModerator)
	member := seedProfile(t, db, "member", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)

	var posts []*model.Post
	for i := 0; i < 4; i++ {
		posts = append(posts, seedPost(t, db, space.ID, mod.ID, time.Now().Add(time.Duration(i)*time.Second)))
	}

	assert.ErrorIs(t, svc.PinPost(member.ID, posts[0].ID), apperr.ErrForbidden)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.PinPost(mod.ID, posts[i].ID))
	}
	// 同一空间第 4 个置顶触顶
	assert.ErrorIs(t, svc.PinPost(mod.ID, posts[3].ID), apperr.ErrCapacity)

	// 重复置顶
	assert.ErrorIs(t, svc.PinPost(mod.ID, posts[0].ID), apperr.ErrConflict)

	// 取消一个之后又能置顶
	require.NoError(t, svc.UnpinPost(mod.ID, posts[0].ID))
	require.NoError(t, svc.PinPost(mod.ID, posts[3].ID))

	// 未置顶的取消是 Conflict
	assert.ErrorIs(t, svc.UnpinPost(mod.ID, posts[0].ID), apperr.ErrConflict)
}

func TestPinCapacityPerSpace(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	mod := seedProfile(t, db, "mod", model.RoleModerator)
	a := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	b := seedSpace(t, db, model.SpacePublic, model.PostByAll)

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.PinPost(mod.ID, seedPost(t, db, a.ID, mod.ID, time.Now()).ID))
	}
	// 上限按空间算，另一个空间不受影响
	require.NoError(t, svc.PinPost(mod.ID, seedPost(t, db, b.ID, mod.ID, time.Now()).ID))
}

func TestListBySpaceCursor(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)

	base := time.Now().Add(-time.Hour).Truncate(time.Second)
	var ids []uint64
	for i := 0; i < 5; i++ {
		p := seedPost(t, db, space.ID, author.ID, base.Add(time.Duration(i)*time.Minute))
		ids = append(ids, p.ID)
	}

	// 第一页：最新的两条
	page, err := svc.ListBySpace(0, space.ID, 0, time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, ids[4], page.Posts[0].ID)
	assert.Equal(t, ids[3], page.Posts[1].ID)

	// 翻页到底
	page, err = svc.ListBySpace(0, space.ID, page.NextLastID, page.NextLastAt, 2)
	require.NoError(t, err)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, ids[2], page.Posts[0].ID)
	assert.Equal(t, ids[1], page.Posts[1].ID)

	page, err = svc.ListBySpace(0, space.ID, page.NextLastID, page.NextLastAt, 2)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Equal(t, ids[0], page.Posts[0].ID)
	assert.False(t, page.HasMore)
}

func TestListBySpaceVisibility(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	member := seedProfile(t, db, "member", model.RoleMember)
	space := seedSpace(t, db, model.SpaceMembers, model.PostByAll)
	seedPost(t, db, space.ID, member.ID, time.Now())

	// 未登录访客对 members 空间拿 NotFound，不暴露存在性
	_, err := svc.ListBySpace(0, space.ID, 0, time.Time{}, 10)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	page, err := svc.ListBySpace(member.ID, space.ID, 0, time.Time{}, 10)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
}

func TestListPaidSpaceRequiresMembership(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	member := seedProfile(t, db, "member", model.RoleMember)
	vip := seedProfile(t, db, "vip", model.RoleMember)
	require.NoError(t, db.Create(&model.Membership{
		UserID: vip.ID, Tier: "pro", Status: model.MembershipActive,
	}).Error)

	space := seedSpace(t, db, model.SpacePaid, model.PostByAll)
	require.NoError(t, db.Model(space).Update("required_tier", "pro").Error)
	seedPost(t, db, space.ID, vip.ID, time.Now())

	_, err := svc.ListBySpace(member.ID, space.ID, 0, time.Time{}, 10)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	page, err := svc.ListBySpace(vip.ID, space.ID, 0, time.Time{}, 10)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
}

func TestUpdatePostPartial(t *testing.T) {
	db := newTestDB(t)
	svc := NewPostService(db)
	author := seedProfile(t, db, "alice", model.RoleMember)
	other := seedProfile(t, db, "bob", model.RoleMember)
	space := seedSpace(t, db, model.SpacePublic, model.PostByAll)
	post := seedPost(t, db, space.ID, author.ID, time.Now())

	newTitle := "updated"
	assert.ErrorIs(t, svc.UpdatePost(other.ID, post.ID, PostPatch{Title: &newTitle}), apperr.ErrForbidden)

	require.NoError(t, svc.UpdatePost(author.ID, post.ID, PostPatch{Title: &newTitle}))
	got := reloadPost(t, db, post.ID)
	assert.Equal(t, "updated", got.Title)
	// 没传的字段不动，edited_at 打上
	assert.Equal(t, post.Content, got.Content)
	assert.NotNil(t, got.EditedAt)
}
