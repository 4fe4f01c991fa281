package mysql

import (
	"context"
	"errors"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowRepository struct {
	DB *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{DB: db}
}

// Follow 幂等关注，状态从未关注切到已关注时 changed=true
func (r *FollowRepository) Follow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follow
		// select for update 避免竞争
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&rel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				rel = model.Follow{FollowerID: followerID, FolloweeID: followeeID, Status: 1}
				if err = tx.Create(&rel).Error; err != nil {
					return err
				}
				changed = true
				return nil
			}
			return err
		}
		if rel.Status == 1 {
			changed = false
			return nil
		}
		if err := tx.Model(&model.Follow{}).
			Where("id = ? AND status = 0", rel.ID).
			Update("status", 1).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

// Unfollow 同样幂等
func (r *FollowRepository) Unfollow(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var changed bool
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follow
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
			First(&rel).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				changed = false
				return nil
			}
			return err
		}
		if rel.Status == 0 {
			changed = false
			return nil
		}
		if err := tx.Model(&model.Follow{}).
			Where("id = ? AND status = 1", rel.ID).
			Update("status", 0).Error; err != nil {
			return err
		}
		changed = true
		return nil
	})
	return changed, err
}

func (r *FollowRepository) IsFollowing(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ? AND status = 1", followerID, followeeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// FolloweeIDs 关注流的作者集合
func (r *FollowRepository) FolloweeIDs(ctx context.Context, followerID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).
		Model(&model.Follow{}).
		Where("follower_id = ? AND status = 1", followerID).
		Pluck("followee_id", &ids).Error
	return ids, err
}
