package service

import (
	"encoding/json"
	"errors"
	"time"
	"unicode/utf8"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MaxTitleLen = 200
	MaxPinned   = 3
	DefaultPage = 20
	MaxPageSize = 50
)

type PostService struct {
	db          *gorm.DB
	profiles    *mysql.ProfileRepository
	memberships *mysql.MembershipRepository
	spaces      *mysql.SpaceRepository
	posts       *mysql.PostRepository
	points      *mysql.PointsRepository
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{
		db:          db,
		profiles:    mysql.NewProfileRepository(db),
		memberships: mysql.NewMembershipRepository(db),
		spaces:      mysql.NewSpaceRepository(db),
		posts:       mysql.NewPostRepository(db),
		points:      mysql.NewPointsRepository(db),
	}
}

// CreatePost 建帖：权限 → 写帖（作者名/头像快照）→ 记 10 分，同一事务
func (s *PostService) CreatePost(viewerID, spaceID uint64, title, content, contentHTML string, mediaRefs []string) (uint64, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return 0, err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return 0, err
	}
	if content == "" {
		return 0, apperr.Validation("content required")
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return 0, apperr.Validation("title too long")
	}

	space, err := s.spaces.FindActive(spaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("space", spaceID)
	}
	if err != nil {
		return 0, err
	}
	if !permission.CanPostInSpace(viewer, space) {
		return 0, apperr.Forbidden("cannot post in this space")
	}

	var refs string
	if len(mediaRefs) > 0 {
		b, merr := json.Marshal(mediaRefs)
		if merr != nil {
			return 0, merr
		}
		refs = string(b)
	}

	post := &model.Post{
		SpaceID:      spaceID,
		AuthorID:     viewer.ID,
		Title:        title,
		Content:      content,
		ContentHTML:  contentHTML,
		MediaRefs:    refs,
		AuthorName:   viewer.DisplayName,
		AuthorAvatar: viewer.AvatarRef,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.posts.WithTx(tx).Create(post); err != nil {
			return err
		}
		return s.points.WithTx(tx).Award(viewer.ID, model.ActionPostCreated, model.PointsPostCreated, "post", post.ID)
	})
	if err != nil {
		return 0, err
	}
	return post.ID, nil
}

// PostPatch 部分更新，nil 字段保持原值
type PostPatch struct {
	Title       *string
	Content     *string
	ContentHTML *string
	MediaRefs   []string
}

func (s *PostService) UpdatePost(viewerID, postID uint64, patch PostPatch) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}

	post, err := s.posts.FindActive(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("post", postID)
	}
	if err != nil {
		return err
	}
	if !permission.CanEditContent(viewer, post.AuthorID) {
		return apperr.Forbidden("cannot edit this post")
	}

	fields := map[string]any{"edited_at": time.Now()}
	if patch.Title != nil {
		if utf8.RuneCountInString(*patch.Title) > MaxTitleLen {
			return apperr.Validation("title too long")
		}
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		if *patch.Content == "" {
			return apperr.Validation("content required")
		}
		fields["content"] = *patch.Content
	}
	if patch.ContentHTML != nil {
		fields["content_html"] = *patch.ContentHTML
	}
	if patch.MediaRefs != nil {
		b, merr := json.Marshal(patch.MediaRefs)
		if merr != nil {
			return merr
		}
		fields["media_refs"] = string(b)
	}
	return s.posts.UpdateFields(postID, fields)
}

// DeletePost 软删。已删的帖子：有权限的人看到 AlreadyInState，
// 无权限的人一律 NotFound，不暴露存在性
func (s *PostService) DeletePost(viewerID, postID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}

	post, err := s.posts.FindAny(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("post", postID)
	}
	if err != nil {
		return err
	}
	if !permission.CanDeleteContent(viewer, post.AuthorID) {
		return apperr.NotFound("post", postID)
	}
	if post.DeletedAt != nil {
		return apperr.Conflict("post already deleted")
	}
	return s.posts.SoftDelete(postID, time.Now())
}

// RestorePost 仅 admin；要求当前确实处于已删除态
func (s *PostService) RestorePost(viewerID, postID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAdmin(viewer); err != nil {
		return err
	}

	post, err := s.posts.FindAny(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("post", postID)
	}
	if err != nil {
		return err
	}
	if post.DeletedAt == nil {
		return apperr.Conflict("post is not deleted")
	}
	return s.posts.Restore(postID)
}

// PinPost moderator 起步；同一空间并存置顶数上限 3，满了报容量错
func (s *PostService) PinPost(viewerID, postID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireRole(viewer, model.RoleModerator); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		var post model.Post
		// 锁住目标行，置顶计数在同一快照里判定
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND deleted_at IS NULL", postID).
			First(&post).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("post", postID)
			}
			return err
		}
		if post.PinnedAt != nil {
			return apperr.Conflict("post already pinned")
		}
		pinned, err := posts.CountPinned(post.SpaceID)
		if err != nil {
			return err
		}
		if pinned >= MaxPinned {
			return apperr.Capacity("pin limit reached for this space")
		}
		return posts.UpdateFields(postID, map[string]any{"pinned_at": time.Now()})
	})
}

func (s *PostService) UnpinPost(viewerID, postID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireRole(viewer, model.RoleModerator); err != nil {
		return err
	}

	post, err := s.posts.FindActive(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("post", postID)
	}
	if err != nil {
		return err
	}
	if post.PinnedAt == nil {
		return apperr.Conflict("post is not pinned")
	}
	return s.posts.UpdateFields(postID, map[string]any{"pinned_at": nil})
}

// PostPage 游标分页结果
type PostPage struct {
	Posts      []model.Post
	NextLastID uint64
	NextLastAt time.Time
	HasMore    bool
}

// ListBySpace 空间内帖子列表，可见性不过关时按 NotFound 处理
func (s *PostService) ListBySpace(viewerID, spaceID uint64, lastID uint64, lastAt time.Time, size int) (*PostPage, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}

	space, err := s.spaces.FindActive(spaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("space", spaceID)
	}
	if err != nil {
		return nil, err
	}
	var membership *model.Membership
	if viewer != nil {
		if membership, err = s.memberships.FindByUser(viewer.ID); err != nil {
			return nil, err
		}
	}
	if !permission.CanViewSpace(viewer, space, membership) {
		return nil, apperr.NotFound("space", spaceID)
	}

	if size <= 0 || size > MaxPageSize {
		size = DefaultPage
	}
	// 多取一条判断还有没有下一页
	list, err := s.posts.ListBySpaceCursor(spaceID, lastID, lastAt, size+1)
	if err != nil {
		return nil, err
	}
	return buildPostPage(list, size), nil
}

// ListDeleted 回收站，admin 专属：moderator 虽可删帖，这个清单不对其开放
func (s *PostService) ListDeleted(viewerID uint64, limit int) ([]model.Post, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}
	if err = permission.RequireAdmin(viewer); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = DefaultPage
	}
	return s.posts.ListDeleted(limit)
}

func buildPostPage(list []model.Post, size int) *PostPage {
	page := &PostPage{}
	if len(list) > size {
		page.HasMore = true
		list = list[:size]
	}
	page.Posts = list
	if len(list) > 0 {
		last := list[len(list)-1]
		page.NextLastID = last.ID
		page.NextLastAt = last.CreatedAt
	}
	return page
}
