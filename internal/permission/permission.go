// Package permission 纯判定函数，不做任何 I/O；所有写操作入口先过这里
package permission

import (
	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
)

// HasRole 角色全序比较：member(1) < moderator(2) < admin(3)
func HasRole(actual, minimum model.Role) bool {
	return actual >= minimum
}

// CanViewSpace 空间可见性判定。viewer 为 nil 表示未登录，只放行 public；
// paid 空间看会员状态与 tier 匹配，moderator 及以上无条件放行。
// 可见性新增枚举值时这里必须补分支（故意不写 default 放行）
func CanViewSpace(viewer *model.Profile, space *model.Space, m *model.Membership) bool {
	if viewer != nil && HasRole(viewer.Role, model.RoleModerator) {
		return true
	}
	switch space.Visibility {
	case model.SpacePublic:
		return true
	case model.SpaceMembers:
		return viewer != nil
	case model.SpacePaid:
		if viewer == nil || m == nil {
			return false
		}
		if m.Status != model.MembershipActive && m.Status != model.MembershipTrialing {
			return false
		}
		// RequiredTier 为空表示任意有效会员均可
		return space.RequiredTier == "" || m.Tier == space.RequiredTier
	}
	return false
}

// CanPostInSpace 发帖门槛判定
func CanPostInSpace(viewer *model.Profile, space *model.Space) bool {
	if viewer == nil {
		return false
	}
	switch space.PostPermission {
	case model.PostByAll:
		return true
	case model.PostByModerators:
		return HasRole(viewer.Role, model.RoleModerator)
	case model.PostByAdmin:
		return HasRole(viewer.Role, model.RoleAdmin)
	}
	return false
}

// CanEditContent 作者本人或 moderator 及以上
func CanEditContent(viewer *model.Profile, authorID uint64) bool {
	if viewer == nil {
		return false
	}
	return viewer.ID == authorID || HasRole(viewer.Role, model.RoleModerator)
}

// CanDeleteContent 与编辑同一条件
func CanDeleteContent(viewer *model.Profile, authorID uint64) bool {
	return CanEditContent(viewer, authorID)
}

// RequireAuth 断言已登录
func RequireAuth(viewer *model.Profile) error {
	if viewer == nil {
		return apperr.Unauthenticated("login required")
	}
	return nil
}

// RequireRole 断言最低角色，失败即整个请求终止，不产生任何写入
func RequireRole(viewer *model.Profile, minimum model.Role) error {
	if err := RequireAuth(viewer); err != nil {
		return err
	}
	if !HasRole(viewer.Role, minimum) {
		return apperr.Forbidden("requires " + minimum.String() + " role")
	}
	return nil
}

// RequireAdmin 空间管理等后台操作的统一门槛
func RequireAdmin(viewer *model.Profile) error {
	return RequireRole(viewer, model.RoleAdmin)
}
