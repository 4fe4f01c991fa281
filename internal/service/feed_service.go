package service

import (
	"context"
	"time"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

// FeedService 三种流共用同一套空间可见性过滤
type FeedService struct {
	db          *gorm.DB
	profiles    *mysql.ProfileRepository
	memberships *mysql.MembershipRepository
	spaces      *mysql.SpaceRepository
	posts       *mysql.PostRepository
	follows     *mysql.FollowRepository
}

func NewFeedService(db *gorm.DB) *FeedService {
	return &FeedService{
		db:          db,
		profiles:    mysql.NewProfileRepository(db),
		memberships: mysql.NewMembershipRepository(db),
		spaces:      mysql.NewSpaceRepository(db),
		posts:       mysql.NewPostRepository(db),
		follows:     mysql.NewFollowRepository(db),
	}
}

// visibleSpaceIDs 逐空间过可见性判定；未登录 viewer 为 nil，只剩 public
func (s *FeedService) visibleSpaceIDs(viewerID uint64) (*model.Profile, []uint64, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, nil, err
	}
	var membership *model.Membership
	if viewer != nil {
		if membership, err = s.memberships.FindByUser(viewer.ID); err != nil {
			return nil, nil, err
		}
	}
	all, err := s.spaces.ListActive()
	if err != nil {
		return nil, nil, err
	}
	ids := make([]uint64, 0, len(all))
	for i := range all {
		if permission.CanViewSpace(viewer, &all[i], membership) {
			ids = append(ids, all[i].ID)
		}
	}
	return viewer, ids, nil
}

// Recent 时间流，(created_at, id) 游标
func (s *FeedService) Recent(viewerID uint64, lastID uint64, lastAt time.Time, size int) (*PostPage, error) {
	_, spaceIDs, err := s.visibleSpaceIDs(viewerID)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPage
	}
	list, err := s.posts.ListBySpacesCursor(spaceIDs, lastID, lastAt, size+1)
	if err != nil {
		return nil, err
	}
	return buildPostPage(list, size), nil
}

// Following 时间流再按关注的作者过滤
func (s *FeedService) Following(ctx context.Context, viewerID uint64, lastID uint64, lastAt time.Time, size int) (*PostPage, error) {
	viewer, spaceIDs, err := s.visibleSpaceIDs(viewerID)
	if err != nil {
		return nil, err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return nil, err
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPage
	}
	authorIDs, err := s.follows.FolloweeIDs(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	list, err := s.posts.ListByAuthorsCursor(spaceIDs, authorIDs, lastID, lastAt, size+1)
	if err != nil {
		return nil, err
	}
	return buildPostPage(list, size), nil
}

// PopularPage 热度流用 offset 游标：热度分是计算值没有索引，
// 并发写入下翻页可能跳行/重复，按已知限制处理
type PopularPage struct {
	Posts      []model.Post
	NextOffset int
	HasMore    bool
}

func (s *FeedService) Popular(viewerID uint64, offset, size int) (*PopularPage, error) {
	_, spaceIDs, err := s.visibleSpaceIDs(viewerID)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size > MaxPageSize {
		size = DefaultPage
	}
	if offset < 0 {
		offset = 0
	}
	list, err := s.posts.ListPopular(spaceIDs, offset, size+1)
	if err != nil {
		return nil, err
	}
	page := &PopularPage{}
	if len(list) > size {
		page.HasMore = true
		list = list[:size]
	}
	page.Posts = list
	page.NextOffset = offset + len(list)
	return page, nil
}
