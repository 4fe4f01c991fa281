package mysql

import (
	"errors"
	"time"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpaceRepository struct {
	DB *gorm.DB
}

func NewSpaceRepository(db *gorm.DB) *SpaceRepository {
	return &SpaceRepository{DB: db}
}

func (r *SpaceRepository) WithTx(tx *gorm.DB) *SpaceRepository {
	return &SpaceRepository{DB: tx}
}

// Create 事务内锁行取当前最大 order，新空间排到末尾
func (r *SpaceRepository) Create(space *model.Space) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var maxOrder int
		row := tx.Model(&model.Space{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("deleted_at IS NULL").
			Select("COALESCE(MAX(display_order), 0)").
			Row()
		if err := row.Scan(&maxOrder); err != nil {
			return err
		}
		space.Order = maxOrder + 1
		return tx.Create(space).Error
	})
}

// FindActive 未软删的空间
func (r *SpaceRepository) FindActive(id uint64) (*model.Space, error) {
	var sp model.Space
	err := r.DB.Where("id = ? AND deleted_at IS NULL", id).First(&sp).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

// FindAny 连同软删一起查，后台恢复/状态判断用
func (r *SpaceRepository) FindAny(id uint64) (*model.Space, error) {
	var sp model.Space
	err := r.DB.First(&sp, id).Error
	if err != nil {
		return nil, err
	}
	return &sp, nil
}

func (r *SpaceRepository) ListActive() ([]model.Space, error) {
	var list []model.Space
	err := r.DB.Where("deleted_at IS NULL").Order("display_order ASC").Find(&list).Error
	return list, err
}

func (r *SpaceRepository) UpdateFields(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Space{}).Where("id = ?", id).Updates(fields).Error
}

// SoftDelete 打删除时间戳；行不动
func (r *SpaceRepository) SoftDelete(id uint64, at time.Time) error {
	return r.DB.Model(&model.Space{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", at).Error
}

var ErrReorderInvalid = errors.New("reorder ids do not match active spaces")

// Reorder 全量重排：先整体校验（每个 id 存在且未删、无重复、覆盖全部在用空间），
// 校验不过不落任何一笔；通过后按位置重写 order = pos+1
func (r *SpaceRepository) Reorder(orderedIDs []uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var active []model.Space
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("deleted_at IS NULL").Find(&active).Error; err != nil {
			return err
		}
		if len(orderedIDs) != len(active) {
			return ErrReorderInvalid
		}
		known := make(map[uint64]bool, len(active))
		for _, sp := range active {
			known[sp.ID] = true
		}
		seen := make(map[uint64]bool, len(orderedIDs))
		for _, id := range orderedIDs {
			if !known[id] || seen[id] {
				return ErrReorderInvalid
			}
			seen[id] = true
		}
		for pos, id := range orderedIDs {
			if err := tx.Model(&model.Space{}).
				Where("id = ?", id).
				Update("display_order", pos+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
