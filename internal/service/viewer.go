package service

import (
	"errors"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

// loadViewer 每个请求解析一次身份再显式传参，不走任何全局状态。
// viewerID=0 表示未登录读；写操作自己再做 RequireAuth
func loadViewer(repo *mysql.ProfileRepository, viewerID uint64) (*model.Profile, error) {
	if viewerID == 0 {
		return nil, nil
	}
	p, err := repo.FindByID(viewerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthenticated("profile not found")
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}
