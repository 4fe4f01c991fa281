package mysql

import (
	"errors"
	"time"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) WithTx(tx *gorm.DB) *PostRepository {
	return &PostRepository{DB: tx}
}

func (r *PostRepository) Create(post *model.Post) error {
	return r.DB.Create(post).Error
}

// FindActive 未软删的帖子
func (r *PostRepository) FindActive(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Where("id = ? AND deleted_at IS NULL", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindAny 不过滤软删，恢复与状态机判断用
func (r *PostRepository) FindAny(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// ListBySpaceCursor (created_at, id) 严格游标，时间倒序；lastAt 零值表示第一页
func (r *PostRepository) ListBySpaceCursor(spaceID uint64, lastID uint64, lastAt time.Time, limit int) ([]model.Post, error) {
	var list []model.Post
	q := r.DB.Where("space_id = ? AND deleted_at IS NULL", spaceID)
	if !lastAt.IsZero() {
		// 先比时间，同一时间点用 id 打破并列
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", lastAt, lastAt, lastID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListBySpacesCursor 多空间合并的时间流
func (r *PostRepository) ListBySpacesCursor(spaceIDs []uint64, lastID uint64, lastAt time.Time, limit int) ([]model.Post, error) {
	if len(spaceIDs) == 0 {
		return nil, nil
	}
	var list []model.Post
	q := r.DB.Where("space_id IN ? AND deleted_at IS NULL", spaceIDs)
	if !lastAt.IsZero() {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", lastAt, lastAt, lastID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListByAuthorsCursor 关注流：在可见空间基础上再按作者过滤
func (r *PostRepository) ListByAuthorsCursor(spaceIDs, authorIDs []uint64, lastID uint64, lastAt time.Time, limit int) ([]model.Post, error) {
	if len(spaceIDs) == 0 || len(authorIDs) == 0 {
		return nil, nil
	}
	var list []model.Post
	q := r.DB.Where("space_id IN ? AND author_id IN ? AND deleted_at IS NULL", spaceIDs, authorIDs)
	if !lastAt.IsZero() {
		q = q.Where("(created_at < ? OR (created_at = ? AND id < ?))", lastAt, lastAt, lastID)
	}
	err := q.Order("created_at DESC, id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// ListPopular 按热度分 like_count + comment_count*2 排序。
// 热度分不是落库字段，用不了索引游标，只能 offset 分页；
// 并发写入下翻页可能跳行或重复，属已知限制
func (r *PostRepository) ListPopular(spaceIDs []uint64, offset, limit int) ([]model.Post, error) {
	if len(spaceIDs) == 0 {
		return nil, nil
	}
	var list []model.Post
	err := r.DB.Where("space_id IN ? AND deleted_at IS NULL", spaceIDs).
		Order("(like_count + comment_count * 2) DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// ListDeleted 后台回收站列表
func (r *PostRepository) ListDeleted(limit int) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.Where("deleted_at IS NOT NULL").
		Order("deleted_at DESC").
		Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *PostRepository) UpdateFields(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Post{}).Where("id = ?", id).Updates(fields).Error
}

func (r *PostRepository) SoftDelete(id uint64, at time.Time) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at).Error
}

func (r *PostRepository) Restore(id uint64) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		Update("deleted_at", nil).Error
}

// CountPinned 事务内锁行统计空间当前置顶数，置顶上限判定用
func (r *PostRepository) CountPinned(spaceID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Post{}).
		Where("space_id = ? AND pinned_at IS NOT NULL AND deleted_at IS NULL", spaceID).
		Count(&n).Error
	return n, err
}

// IncrCommentCount 评论计数只增不减：评论软删不回调这里（保留讨论语境，
// 也避免与并发新增评论竞态）
func (r *PostRepository) IncrCommentCount(id uint64) error {
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
}

// IncrLikeCount delta 为 ±1，减到 0 为止不出负数
func (r *PostRepository) IncrLikeCount(id uint64, delta int64) error {
	if delta > 0 {
		return r.DB.Model(&model.Post{}).
			Where("id = ?", id).
			UpdateColumn("like_count", gorm.Expr("like_count + ?", delta)).Error
	}
	return r.DB.Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > 0 THEN like_count - 1 ELSE 0 END")).Error
}

// LatestCreatedBySpaces 每个空间最新一帖的时间，未读标记用。
// 逐空间走 (space_id, created_at) 索引取首行；空间是侧栏级别的量，不会多
func (r *PostRepository) LatestCreatedBySpaces(spaceIDs []uint64) (map[uint64]time.Time, error) {
	out := make(map[uint64]time.Time, len(spaceIDs))
	for _, spaceID := range spaceIDs {
		var post model.Post
		err := r.DB.Select("created_at").
			Where("space_id = ? AND deleted_at IS NULL", spaceID).
			Order("created_at DESC").
			First(&post).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out[spaceID] = post.CreatedAt
	}
	return out, nil
}
