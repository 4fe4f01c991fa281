package service

import (
	"fmt"
	"testing"
	"time"

	"Orbit_Community/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 每个测试独享一个内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Profile{},
		&model.Membership{},
		&model.Space{},
		&model.SpaceVisit{},
		&model.Post{},
		&model.Comment{},
		&model.Like{},
		&model.PointsLedgerEntry{},
		&model.Notification{},
		&model.NotificationOutbox{},
		&model.Follow{},
	))
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, name string, role model.Role) *model.Profile {
	t.Helper()
	p := &model.Profile{
		Email:        fmt.Sprintf("%s@test.local", name),
		DisplayName:  name,
		Visibility:   model.ProfilePublic,
		Role:         role,
		NotifyOnPost: true,
		NotifyOnLike: true,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedSpace(t *testing.T, db *gorm.DB, vis model.SpaceVisibility, perm model.PostPermission) *model.Space {
	t.Helper()
	var maxOrder int
	db.Model(&model.Space{}).Select("COALESCE(MAX(display_order), 0)").Scan(&maxOrder)
	sp := &model.Space{
		Name:           "space",
		Visibility:     vis,
		PostPermission: perm,
		Order:          maxOrder + 1,
	}
	require.NoError(t, db.Create(sp).Error)
	return sp
}

func seedPost(t *testing.T, db *gorm.DB, spaceID, authorID uint64, at time.Time) *model.Post {
	t.Helper()
	p := &model.Post{
		SpaceID:    spaceID,
		AuthorID:   authorID,
		Title:      "title",
		Content:    `{"blocks":[]}`,
		AuthorName: "author",
		CreatedAt:  at,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func reloadProfile(t *testing.T, db *gorm.DB, id uint64) *model.Profile {
	t.Helper()
	var p model.Profile
	require.NoError(t, db.First(&p, id).Error)
	return &p
}

func reloadPost(t *testing.T, db *gorm.DB, id uint64) *model.Post {
	t.Helper()
	var p model.Post
	require.NoError(t, db.First(&p, id).Error)
	return &p
}
