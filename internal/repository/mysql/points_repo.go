package mysql

import (
	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type PointsRepository struct {
	DB *gorm.DB
}

func NewPointsRepository(db *gorm.DB) *PointsRepository {
	return &PointsRepository{DB: db}
}

func (r *PointsRepository) WithTx(tx *gorm.DB) *PointsRepository {
	return &PointsRepository{DB: tx}
}

// Award 追加流水并同步递增档案累计积分。两笔写必须落在同一事务里，
// 档案上的 points 才始终等于流水之和
func (r *PointsRepository) Award(userID uint64, action model.PointsAction, amount int64, sourceType string, sourceID uint64) error {
	entry := model.PointsLedgerEntry{
		UserID:     userID,
		Action:     action,
		Amount:     amount,
		SourceType: sourceType,
		SourceID:   sourceID,
	}
	if err := r.DB.Create(&entry).Error; err != nil {
		return err
	}
	return r.DB.Model(&model.Profile{}).
		Where("id = ?", userID).
		UpdateColumn("points", gorm.Expr("points + ?", amount)).Error
}

// SumByUser 流水合计，对账用
func (r *PointsRepository) SumByUser(userID uint64) (int64, error) {
	var total int64
	err := r.DB.Model(&model.PointsLedgerEntry{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	return total, err
}
