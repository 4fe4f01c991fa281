package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
)

func profileWith(role model.Role) *model.Profile {
	return &model.Profile{ID: 1, Role: role}
}

func TestHasRoleTotalOrder(t *testing.T) {
	assert.True(t, HasRole(model.RoleAdmin, model.RoleMember))
	assert.True(t, HasRole(model.RoleAdmin, model.RoleModerator))
	assert.True(t, HasRole(model.RoleAdmin, model.RoleAdmin))
	assert.True(t, HasRole(model.RoleModerator, model.RoleMember))
	assert.False(t, HasRole(model.RoleModerator, model.RoleAdmin))
	assert.False(t, HasRole(model.RoleMember, model.RoleModerator))
}

// 角色单调性：member 拿得到的权限，moderator 和 admin 一定也拿得到
func TestRoleMonotonicity(t *testing.T) {
	spaces := []model.Space{
		{Visibility: model.SpacePublic, PostPermission: model.PostByAll},
		{Visibility: model.SpaceMembers, PostPermission: model.PostByModerators},
		{Visibility: model.SpacePaid, RequiredTier: "pro", PostPermission: model.PostByAdmin},
	}
	roles := []model.Role{model.RoleMember, model.RoleModerator, model.RoleAdmin}
	for _, sp := range spaces {
		sp := sp
		prevView, prevPost := false, false
		for _, role := range roles {
			p := profileWith(role)
			view := CanViewSpace(p, &sp, nil)
			post := CanPostInSpace(p, &sp)
			if prevView {
				assert.True(t, view, "view lost when escalating to %v", role)
			}
			if prevPost {
				assert.True(t, post, "post lost when escalating to %v", role)
			}
			prevView, prevPost = view, post
		}
	}
}

func TestCanViewSpacePaid(t *testing.T) {
	sp := &model.Space{Visibility: model.SpacePaid, RequiredTier: "pro"}
	member := profileWith(model.RoleMember)

	assert.False(t, CanViewSpace(nil, sp, nil))
	assert.False(t, CanViewSpace(member, sp, nil))
	assert.False(t, CanViewSpace(member, sp, &model.Membership{Tier: "pro", Status: model.MembershipCanceled}))
	assert.False(t, CanViewSpace(member, sp, &model.Membership{Tier: "basic", Status: model.MembershipActive}))
	assert.True(t, CanViewSpace(member, sp, &model.Membership{Tier: "pro", Status: model.MembershipActive}))
	assert.True(t, CanViewSpace(member, sp, &model.Membership{Tier: "pro", Status: model.MembershipTrialing}))

	// 不限定 tier 的 paid 空间，任意有效会员可见
	anyTier := &model.Space{Visibility: model.SpacePaid}
	assert.True(t, CanViewSpace(member, anyTier, &model.Membership{Tier: "basic", Status: model.MembershipActive}))

	// moderator 无需会员
	assert.True(t, CanViewSpace(profileWith(model.RoleModerator), sp, nil))
}

func TestCanViewSpaceUnauthenticated(t *testing.T) {
	assert.True(t, CanViewSpace(nil, &model.Space{Visibility: model.SpacePublic}, nil))
	assert.False(t, CanViewSpace(nil, &model.Space{Visibility: model.SpaceMembers}, nil))
	assert.False(t, CanViewSpace(nil, &model.Space{Visibility: model.SpacePaid}, nil))
}

func TestCanEditContent(t *testing.T) {
	owner := &model.Profile{ID: 7, Role: model.RoleMember}
	other := &model.Profile{ID: 8, Role: model.RoleMember}
	mod := &model.Profile{ID: 9, Role: model.RoleModerator}

	assert.True(t, CanEditContent(owner, 7))
	assert.False(t, CanEditContent(other, 7))
	assert.True(t, CanEditContent(mod, 7))
	assert.False(t, CanEditContent(nil, 7))
	assert.Equal(t, CanEditContent(other, 7), CanDeleteContent(other, 7))
}

func TestRequireWrappers(t *testing.T) {
	err := RequireAuth(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUnauthenticated)

	err = RequireAdmin(profileWith(model.RoleModerator))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrForbidden)

	assert.NoError(t, RequireAdmin(profileWith(model.RoleAdmin)))
	assert.NoError(t, RequireRole(profileWith(model.RoleModerator), model.RoleModerator))
}
