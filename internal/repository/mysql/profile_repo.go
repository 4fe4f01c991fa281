package mysql

import (
	"errors"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: db}
}

func (r *ProfileRepository) WithTx(tx *gorm.DB) *ProfileRepository {
	return &ProfileRepository{DB: tx}
}

// EnsureByEmail 身份解析：按小写 email 幂等建档。并发下冲突交给唯一索引，
// 冲突后重读即为他人刚建好的档案
func (r *ProfileRepository) EnsureByEmail(email, displayName string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.Where("email = ?", email).First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	p = model.Profile{
		Email:       email,
		DisplayName: displayName,
		Visibility:  model.ProfilePublic,
		Role:        model.RoleMember,
	}
	if err = r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoNothing: true,
	}).Create(&p).Error; err != nil {
		return nil, err
	}
	// OnConflict DoNothing 命中时拿不到 ID，统一回读
	if err = r.DB.Where("email = ?", email).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindByID(id uint64) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) FindByEmail(email string) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.Where("email = ?", email).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByIDs 批量读档案，评论视图等级补全用
func (r *ProfileRepository) FindByIDs(ids []uint64) (map[uint64]*model.Profile, error) {
	out := make(map[uint64]*model.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []model.Profile
	if err := r.DB.Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for i := range list {
		out[list[i].ID] = &list[i]
	}
	return out, nil
}

// UpdateFields 档案部分更新；points/role 不走这里
func (r *ProfileRepository) UpdateFields(id uint64, fields map[string]any) error {
	return r.DB.Model(&model.Profile{}).Where("id = ?", id).Updates(fields).Error
}

// AddPoints 档案累计积分递增，必须在积分流水同一事务里调用
func (r *ProfileRepository) AddPoints(id uint64, delta int64) error {
	return r.DB.Model(&model.Profile{}).
		Where("id = ?", id).
		UpdateColumn("points", gorm.Expr("points + ?", delta)).Error
}

func (r *ProfileRepository) TopByPoints(limit int) ([]model.Profile, error) {
	var list []model.Profile
	err := r.DB.Order("points DESC, id ASC").Limit(limit).Find(&list).Error
	return list, err
}
