package mysql

import (
	"Orbit_Community/internal/model"

	"gorm.io/gorm"
)

type AccountRepository struct {
	DB *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{DB: db}
}

func (r *AccountRepository) Create(acc *model.Account) error {
	return r.DB.Create(acc).Error
}

func (r *AccountRepository) FindByEmail(email string) (*model.Account, error) {
	var acc model.Account
	err := r.DB.Where("email = ?", email).First(&acc).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) FindByID(id uint64) (*model.Account, error) {
	var acc model.Account
	err := r.DB.First(&acc, id).Error
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (r *AccountRepository) UpdatePassword(acc *model.Account, hashed string) error {
	return r.DB.Model(acc).Update("password", hashed).Error
}
