package service

import (
	"context"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

type FollowService struct {
	repo *mysql.FollowRepository
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{repo: mysql.NewFollowRepository(db)}
}

func (s *FollowService) Follow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, apperr.Validation("invalid user id")
	}
	if followerID == followeeID {
		return false, apperr.Validation("cannot follow self")
	}
	return s.repo.Follow(ctx, followerID, followeeID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, apperr.Validation("invalid user id")
	}
	if followerID == followeeID {
		return false, apperr.Validation("cannot unfollow self")
	}
	return s.repo.Unfollow(ctx, followerID, followeeID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	if followerID == 0 || followeeID == 0 {
		return false, apperr.Validation("invalid user id")
	}
	return s.repo.IsFollowing(ctx, followerID, followeeID)
}
