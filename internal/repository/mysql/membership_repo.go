package mysql

import (
	"errors"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type MembershipRepository struct {
	DB *gorm.DB
}

func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{DB: db}
}

// FindByUser 没有会员记录返回 nil，不算错误
func (r *MembershipRepository) FindByUser(userID uint64) (*model.Membership, error) {
	var m model.Membership
	err := r.DB.Where("user_id = ?", userID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
