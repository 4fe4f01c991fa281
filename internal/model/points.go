package model

import "time"

// PointsAction 积分动作标签
type PointsAction string

const (
	ActionPostCreated    PointsAction = "post_created"
	ActionCommentCreated PointsAction = "comment_created"
	ActionLikeReceived   PointsAction = "like_received"
)

// PointsLedgerEntry 积分流水，只追加不修改；档案上的 Points 必须等于流水之和，
// 由写入事务同步维护，不做事后重算
type PointsLedgerEntry struct {
	ID     uint64       `gorm:"primaryKey"`
	UserID uint64       `gorm:"not null;index"`
	Action PointsAction `gorm:"size:32;not null"`
	Amount int64        `gorm:"not null"`
	// SourceType/SourceID 指向触发积分的内容，可为空
	SourceType string `gorm:"size:16"`
	SourceID   uint64
	CreatedAt  time.Time
}

func (PointsLedgerEntry) TableName() string {
	return "points_ledger"
}

// 各动作的固定积分
const (
	PointsPostCreated    = 10
	PointsCommentCreated = 5
	PointsLikeReceived   = 2
)

// LevelForPoints 由累计积分推出等级，不落库
func LevelForPoints(points int64) int {
	switch {
	case points < 100:
		return 1
	case points < 300:
		return 2
	case points < 700:
		return 3
	case points < 1500:
		return 4
	default:
		return 5
	}
}
