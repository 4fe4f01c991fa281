package mysql

import (
	"time"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: tx}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindActive(id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.Where("id = ? AND deleted_at IS NULL", id).First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepository) FindAny(id uint64) (*model.Comment, error) {
	var c model.Comment
	err := r.DB.First(&c, id).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListByPost 一次取整帖评论，嵌套视图在内存里组装；
// 软删的行也要取，内容在读侧替换成占位
func (r *CommentRepository) ListByPost(postID uint64) ([]model.Comment, error) {
	var list []model.Comment
	err := r.DB.Where("post_id = ?", postID).Order("created_at ASC, id ASC").Find(&list).Error
	return list, err
}

func (r *CommentRepository) UpdateFields(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Comment{}).Where("id = ?", id).Updates(fields).Error
}

func (r *CommentRepository) SoftDelete(id uint64, at time.Time) error {
	return r.DB.Model(&model.Comment{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at).Error
}

// IncrLikeCount 同帖子，减法有 0 下限
func (r *CommentRepository) IncrLikeCount(id uint64, delta int64) error {
	if delta > 0 {
		return r.DB.Model(&model.Comment{}).
			Where("id = ?", id).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
	}
	return r.DB.Model(&model.Comment{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
}
