package service

import (
	"errors"
	"unicode/utf8"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	MaxDisplayNameLen = 64
	MaxBioLen         = 500
)

type ProfileService struct {
	profiles *mysql.ProfileRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{profiles: mysql.NewProfileRepository(db)}
}

// Resolve 身份解析：归一化 email → 档案，首次出现幂等建档。
// 所有内容操作的入口都从这里拿到的档案出发
func (s *ProfileService) Resolve(email, displayName string) (*model.Profile, error) {
	email = pkg.NormalizeEmail(email)
	if email == "" {
		return nil, apperr.Unauthenticated("no identity")
	}
	if displayName == "" {
		displayName = email
	}
	return s.profiles.EnsureByEmail(email, displayName)
}

// ProfileView 对外档案视图，等级由累计积分现算
type ProfileView struct {
	ID           uint64                  `json:"id"`
	DisplayName  string                  `json:"display_name"`
	Bio          string                  `json:"bio"`
	AvatarRef    string                  `json:"avatar_ref"`
	Visibility   model.ProfileVisibility `json:"visibility"`
	Role         string                  `json:"role"`
	Points       int64                   `json:"points"`
	Level        int                     `json:"level"`
	NotifyOnPost bool                    `json:"notify_on_post"`
	NotifyOnLike bool                    `json:"notify_on_like"`
}

func toProfileView(p *model.Profile) *ProfileView {
	return &ProfileView{
		ID:           p.ID,
		DisplayName:  p.DisplayName,
		Bio:          p.Bio,
		AvatarRef:    p.AvatarRef,
		Visibility:   p.Visibility,
		Role:         p.Role.String(),
		Points:       p.Points,
		Level:        model.LevelForPoints(p.Points),
		NotifyOnPost: p.NotifyOnPost,
		NotifyOnLike: p.NotifyOnLike,
	}
}

func (s *ProfileService) Get(viewerID, profileID uint64) (*ProfileView, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}
	p, err := s.profiles.FindByID(profileID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("profile", profileID)
	}
	if err != nil {
		return nil, err
	}
	// 私密档案只对本人和 moderator+ 可见
	if p.Visibility == model.ProfilePrivate {
		if viewer == nil || (viewer.ID != p.ID && !permission.HasRole(viewer.Role, model.RoleModerator)) {
			return nil, apperr.NotFound("profile", profileID)
		}
	}
	return toProfileView(p), nil
}

// ProfilePatch nil 字段不动；points/role 永远不走客户端
type ProfilePatch struct {
	DisplayName  *string
	Bio          *string
	AvatarRef    *string
	Visibility   *model.ProfileVisibility
	NotifyOnPost *bool
	NotifyOnLike *bool
}

func (s *ProfileService) Update(viewerID uint64, patch ProfilePatch) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}

	fields := map[string]any{}
	if patch.DisplayName != nil {
		if n := utf8.RuneCountInString(*patch.DisplayName); n == 0 || n > MaxDisplayNameLen {
			return apperr.Validation("display name must be 1-64 characters")
		}
		fields["display_name"] = *patch.DisplayName
	}
	if patch.Bio != nil {
		if utf8.RuneCountInString(*patch.Bio) > MaxBioLen {
			return apperr.Validation("bio too long")
		}
		fields["bio"] = *patch.Bio
	}
	if patch.AvatarRef != nil {
		fields["avatar_ref"] = *patch.AvatarRef
	}
	if patch.Visibility != nil {
		switch *patch.Visibility {
		case model.ProfilePublic, model.ProfilePrivate:
		default:
			return apperr.Validation("invalid visibility")
		}
		fields["visibility"] = *patch.Visibility
	}
	if patch.NotifyOnPost != nil {
		fields["notify_on_post"] = *patch.NotifyOnPost
	}
	if patch.NotifyOnLike != nil {
		fields["notify_on_like"] = *patch.NotifyOnLike
	}
	if len(fields) == 0 {
		return nil
	}
	return s.profiles.UpdateFields(viewer.ID, fields)
}

// Leaderboard 按累计积分取前 N
func (s *ProfileService) Leaderboard(limit int) ([]ProfileView, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPage
	}
	list, err := s.profiles.TopByPoints(limit)
	if err != nil {
		return nil, err
	}
	out := make([]ProfileView, 0, len(list))
	for i := range list {
		out = append(out, *toProfileView(&list[i]))
	}
	return out, nil
}
