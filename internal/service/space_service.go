package service

import (
	"errors"
	"time"
	"unicode/utf8"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	MaxSpaceNameLen = 50
	MaxSpaceDescLen = 200
)

type SpaceService struct {
	db          *gorm.DB
	profiles    *mysql.ProfileRepository
	memberships *mysql.MembershipRepository
	spaces      *mysql.SpaceRepository
	posts       *mysql.PostRepository
	visits      *mysql.SpaceVisitRepository
}

func NewSpaceService(db *gorm.DB) *SpaceService {
	return &SpaceService{
		db:          db,
		profiles:    mysql.NewProfileRepository(db),
		memberships: mysql.NewMembershipRepository(db),
		spaces:      mysql.NewSpaceRepository(db),
		posts:       mysql.NewPostRepository(db),
		visits:      mysql.NewSpaceVisitRepository(db),
	}
}

type SpaceInput struct {
	Name           string
	Description    string
	Icon           string
	Visibility     model.SpaceVisibility
	PostPermission model.PostPermission
	RequiredTier   string
}

func validateSpaceInput(in SpaceInput) error {
	if n := utf8.RuneCountInString(in.Name); n == 0 || n > MaxSpaceNameLen {
		return apperr.Validation("space name must be 1-50 characters")
	}
	if utf8.RuneCountInString(in.Description) > MaxSpaceDescLen {
		return apperr.Validation("space description too long")
	}
	switch in.Visibility {
	case model.SpacePublic, model.SpaceMembers, model.SpacePaid:
	default:
		return apperr.Validation("invalid visibility")
	}
	switch in.PostPermission {
	case model.PostByAll, model.PostByModerators, model.PostByAdmin:
	default:
		return apperr.Validation("invalid post permission")
	}
	return nil
}

// CreateSpace admin 专属；order 自动排到末尾
func (s *SpaceService) CreateSpace(viewerID uint64, in SpaceInput) (*model.Space, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}
	if err = permission.RequireAdmin(viewer); err != nil {
		return nil, err
	}
	if err = validateSpaceInput(in); err != nil {
		return nil, err
	}

	space := &model.Space{
		Name:           in.Name,
		Description:    in.Description,
		Icon:           in.Icon,
		Visibility:     in.Visibility,
		PostPermission: in.PostPermission,
		RequiredTier:   in.RequiredTier,
	}
	if err = s.spaces.Create(space); err != nil {
		return nil, err
	}
	return space, nil
}

func (s *SpaceService) UpdateSpace(viewerID, spaceID uint64, in SpaceInput) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAdmin(viewer); err != nil {
		return err
	}
	if err = validateSpaceInput(in); err != nil {
		return err
	}

	if _, err = s.spaces.FindActive(spaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("space", spaceID)
		}
		return err
	}
	return s.spaces.UpdateFields(spaceID, map[string]any{
		"name":            in.Name,
		"description":     in.Description,
		"icon":            in.Icon,
		"visibility":      in.Visibility,
		"post_permission": in.PostPermission,
		"required_tier":   in.RequiredTier,
	})
}

func (s *SpaceService) DeleteSpace(viewerID, spaceID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAdmin(viewer); err != nil {
		return err
	}

	space, err := s.spaces.FindAny(spaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("space", spaceID)
	}
	if err != nil {
		return err
	}
	if space.DeletedAt != nil {
		return apperr.Conflict("space already deleted")
	}
	return s.spaces.SoftDelete(spaceID, time.Now())
}

// ReorderSpaces 全量重排，校验全过才落库；重排后 order 从 1 起连续
func (s *SpaceService) ReorderSpaces(viewerID uint64, orderedIDs []uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAdmin(viewer); err != nil {
		return err
	}
	if err = s.spaces.Reorder(orderedIDs); err != nil {
		if errors.Is(err, mysql.ErrReorderInvalid) {
			return apperr.Validation(err.Error())
		}
		return err
	}
	return nil
}

// SpaceListItem 空间列表项，带未读标记
type SpaceListItem struct {
	Space  model.Space `json:"space"`
	Unread bool        `json:"unread"`
}

// List 按 order 列出 viewer 可见的空间；未读 = 最新帖晚于最近访问
func (s *SpaceService) List(viewerID uint64) ([]SpaceListItem, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}
	var membership *model.Membership
	if viewer != nil {
		if membership, err = s.memberships.FindByUser(viewer.ID); err != nil {
			return nil, err
		}
	}

	all, err := s.spaces.ListActive()
	if err != nil {
		return nil, err
	}
	visible := make([]model.Space, 0, len(all))
	ids := make([]uint64, 0, len(all))
	for i := range all {
		if permission.CanViewSpace(viewer, &all[i], membership) {
			visible = append(visible, all[i])
			ids = append(ids, all[i].ID)
		}
	}

	latest, err := s.posts.LatestCreatedBySpaces(ids)
	if err != nil {
		return nil, err
	}
	var visits map[uint64]time.Time
	if viewer != nil {
		if visits, err = s.visits.MapByUser(viewer.ID); err != nil {
			return nil, err
		}
	}

	items := make([]SpaceListItem, 0, len(visible))
	for _, sp := range visible {
		item := SpaceListItem{Space: sp}
		if last, ok := latest[sp.ID]; ok && viewer != nil {
			seen, visited := visits[sp.ID]
			item.Unread = !visited || last.After(seen)
		}
		items = append(items, item)
	}
	return items, nil
}

// MarkVisited 记录访问时间，未读标记据此归零
func (s *SpaceService) MarkVisited(viewerID, spaceID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}
	if _, err = s.spaces.FindActive(spaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("space", spaceID)
		}
		return err
	}
	return s.visits.Touch(viewer.ID, spaceID, time.Now())
}
