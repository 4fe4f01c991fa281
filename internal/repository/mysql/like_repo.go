package mysql

import (
	"errors"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type LikeRepository struct {
	DB *gorm.DB
}

func NewLikeRepository(db *gorm.DB) *LikeRepository {
	return &LikeRepository{DB: db}
}

func (r *LikeRepository) WithTx(tx *gorm.DB) *LikeRepository {
	return &LikeRepository{DB: tx}
}

// Find (user, target_type, target_id) 唯一键查找；没有返回 nil
func (r *LikeRepository) Find(userID uint64, targetType model.LikeTarget, targetID uint64) (*model.Like, error) {
	var l model.Like
	err := r.DB.Where("user_id = ? AND target_type = ? AND target_id = ?", userID, targetType, targetID).First(&l).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LikeRepository) Create(like *model.Like) error {
	return r.DB.Create(like).Error
}

func (r *LikeRepository) Delete(id uint64) error {
	return r.DB.Delete(&model.Like{}, id).Error
}

// LikedSet 批量查 viewer 对一批目标的点赞状态，评论视图补全用
func (r *LikeRepository) LikedSet(userID uint64, targetType model.LikeTarget, targetIDs []uint64) (map[uint64]bool, error) {
	out := make(map[uint64]bool, len(targetIDs))
	if userID == 0 || len(targetIDs) == 0 {
		return out, nil
	}
	var list []model.Like
	err := r.DB.Where("user_id = ? AND target_type = ? AND target_id IN ?", userID, targetType, targetIDs).Find(&list).Error
	if err != nil {
		return nil, err
	}
	for _, l := range list {
		out[l.TargetID] = true
	}
	return out, nil
}
