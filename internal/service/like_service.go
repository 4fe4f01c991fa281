package service

import (
	"errors"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

type LikeService struct {
	db       *gorm.DB
	profiles *mysql.ProfileRepository
	posts    *mysql.PostRepository
	comments *mysql.CommentRepository
	likes    *mysql.LikeRepository
	points   *mysql.PointsRepository
}

func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		db:       db,
		profiles: mysql.NewProfileRepository(db),
		posts:    mysql.NewPostRepository(db),
		comments: mysql.NewCommentRepository(db),
		likes:    mysql.NewLikeRepository(db),
		points:   mysql.NewPointsRepository(db),
	}
}

// ToggleResult 切换后的状态与最新计数
type ToggleResult struct {
	Liked    bool  `json:"liked"`
	NewCount int64 `json:"new_count"`
}

// Toggle 点赞切换：有则删（计数-1 不出负），无则插（计数+1，作者记 2 分）。
// 取消点赞不扣分 —— 积分记历史贡献，不跟当下的社交热度走。
// 给自己点赞同样给作者加分，规则上不做自赞排除
func (s *LikeService) Toggle(viewerID uint64, targetType model.LikeTarget, targetID uint64) (*ToggleResult, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return nil, err
	}
	if targetType != model.LikePost && targetType != model.LikeComment {
		return nil, apperr.Validation("invalid target type")
	}

	var result ToggleResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		authorID, err := s.loadTargetAuthor(tx, targetType, targetID)
		if err != nil {
			return err
		}

		likes := s.likes.WithTx(tx)
		existing, err := likes.Find(viewer.ID, targetType, targetID)
		if err != nil {
			return err
		}

		if existing != nil {
			if err = likes.Delete(existing.ID); err != nil {
				return err
			}
			if err = s.bumpCount(tx, targetType, targetID, -1); err != nil {
				return err
			}
			result.Liked = false
		} else {
			if err = likes.Create(&model.Like{
				UserID:     viewer.ID,
				TargetType: targetType,
				TargetID:   targetID,
			}); err != nil {
				return err
			}
			if err = s.bumpCount(tx, targetType, targetID, +1); err != nil {
				return err
			}
			if err = s.points.WithTx(tx).Award(authorID, model.ActionLikeReceived, model.PointsLikeReceived, string(targetType), targetID); err != nil {
				return err
			}
			result.Liked = true
		}

		count, err := s.readCount(tx, targetType, targetID)
		if err != nil {
			return err
		}
		result.NewCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// loadTargetAuthor 目标必须存在且未软删，否则 NotFound
func (s *LikeService) loadTargetAuthor(tx *gorm.DB, targetType model.LikeTarget, targetID uint64) (uint64, error) {
	switch targetType {
	case model.LikePost:
		post, err := s.posts.WithTx(tx).FindActive(targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("post", targetID)
		}
		if err != nil {
			return 0, err
		}
		return post.AuthorID, nil
	default:
		comment, err := s.comments.WithTx(tx).FindActive(targetID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("comment", targetID)
		}
		if err != nil {
			return 0, err
		}
		return comment.AuthorID, nil
	}
}

func (s *LikeService) bumpCount(tx *gorm.DB, targetType model.LikeTarget, targetID uint64, delta int64) error {
	if targetType == model.LikePost {
		return s.posts.WithTx(tx).IncrLikeCount(targetID, delta)
	}
	return s.comments.WithTx(tx).IncrLikeCount(targetID, delta)
}

func (s *LikeService) readCount(tx *gorm.DB, targetType model.LikeTarget, targetID uint64) (int64, error) {
	if targetType == model.LikePost {
		post, err := s.posts.WithTx(tx).FindActive(targetID)
		if err != nil {
			return 0, err
		}
		return post.LikeCount, nil
	}
	comment, err := s.comments.WithTx(tx).FindActive(targetID)
	if err != nil {
		return 0, err
	}
	return comment.LikeCount, nil
}
