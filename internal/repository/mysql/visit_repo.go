package mysql

import (
	"time"

	"Orbit_Community/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SpaceVisitRepository struct {
	DB *gorm.DB
}

func NewSpaceVisitRepository(db *gorm.DB) *SpaceVisitRepository {
	return &SpaceVisitRepository{DB: db}
}

// Touch (user, space) 访问时间 upsert
func (r *SpaceVisitRepository) Touch(userID, spaceID uint64, at time.Time) error {
	visit := model.SpaceVisit{UserID: userID, SpaceID: spaceID, VisitedAt: at}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "space_id"}},
		DoUpdates: clause.Assignments(map[string]any{"visited_at": at}),
	}).Create(&visit).Error
}

// MapByUser 该用户所有空间的最近访问时间
func (r *SpaceVisitRepository) MapByUser(userID uint64) (map[uint64]time.Time, error) {
	var list []model.SpaceVisit
	if err := r.DB.Where("user_id = ?", userID).Find(&list).Error; err != nil {
		return nil, err
	}
	out := make(map[uint64]time.Time, len(list))
	for _, v := range list {
		out[v.SpaceID] = v.VisitedAt
	}
	return out, nil
}
