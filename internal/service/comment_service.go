package service

import (
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"Orbit_Community/internal/apperr"
	"Orbit_Community/internal/model"
	"Orbit_Community/internal/permission"
	"Orbit_Community/internal/repository/mysql"

	"gorm.io/gorm"
)

const (
	MaxCommentLen = 500

	// DeletedContentSentinel 软删评论的内容占位，结构保留、内容不可见
	DeletedContentSentinel = "[deleted]"
)

type CommentService struct {
	db          *gorm.DB
	profiles    *mysql.ProfileRepository
	memberships *mysql.MembershipRepository
	spaces      *mysql.SpaceRepository
	posts       *mysql.PostRepository
	comments    *mysql.CommentRepository
	likes       *mysql.LikeRepository
	points      *mysql.PointsRepository
	notifs      *mysql.NotificationRepository
}

func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		db:          db,
		profiles:    mysql.NewProfileRepository(db),
		memberships: mysql.NewMembershipRepository(db),
		spaces:      mysql.NewSpaceRepository(db),
		posts:       mysql.NewPostRepository(db),
		comments:    mysql.NewCommentRepository(db),
		likes:       mysql.NewLikeRepository(db),
		points:      mysql.NewPointsRepository(db),
		notifs:      mysql.NewNotificationRepository(db),
	}
}

// CreateComment 建评论。对回复的回复做拍平：父级自己还有父级时，
// 把 parent 重定向到原根评论，可见深度封顶 2 层。
// 同一事务里：写评论 → 帖子 comment_count+1 → 记 5 分 → 发通知（去重）
func (s *CommentService) CreateComment(viewerID, postID uint64, content string, parentID *uint64) (uint64, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return 0, err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return 0, err
	}
	// 长度按字符数算，多字节内容不吃亏
	if n := utf8.RuneCountInString(content); n == 0 || n > MaxCommentLen {
		return 0, apperr.Validation("comment must be 1-500 characters")
	}

	post, err := s.posts.FindActive(postID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, apperr.NotFound("post", postID)
	}
	if err != nil {
		return 0, err
	}

	// 先解析有效父级，再进事务
	var effectiveParent *model.Comment
	if parentID != nil {
		parent, perr := s.comments.FindActive(*parentID)
		if errors.Is(perr, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("comment", *parentID)
		}
		if perr != nil {
			return 0, perr
		}
		if parent.PostID != postID {
			return 0, apperr.Validation("parent comment belongs to another post")
		}
		effectiveParent = parent
		if parent.ParentID != nil {
			// 父级已是回复，重定向到原根
			root, rerr := s.comments.FindAny(*parent.ParentID)
			if rerr != nil {
				return 0, rerr
			}
			effectiveParent = root
		}
	}

	comment := &model.Comment{
		PostID:       postID,
		AuthorID:     viewer.ID,
		Content:      content,
		AuthorName:   viewer.DisplayName,
		AuthorAvatar: viewer.AvatarRef,
	}
	if effectiveParent != nil {
		pid := effectiveParent.ID
		comment.ParentID = &pid
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).Create(comment); err != nil {
			return err
		}
		if err := s.posts.WithTx(tx).IncrCommentCount(postID); err != nil {
			return err
		}
		if err := s.points.WithTx(tx).Award(viewer.ID, model.ActionCommentCreated, model.PointsCommentCreated, "comment", comment.ID); err != nil {
			return err
		}
		return s.notifyComment(tx, viewer, post, effectiveParent, comment)
	})
	if err != nil {
		return 0, err
	}
	return comment.ID, nil
}

// notifyComment 通知去重规则：不通知自己；帖主与被回复者是同一人时只发一条
func (s *CommentService) notifyComment(tx *gorm.DB, actor *model.Profile, post *model.Post, parent *model.Comment, comment *model.Comment) error {
	notifs := s.notifs.WithTx(tx)
	notified := map[uint64]bool{actor.ID: true}

	if !notified[post.AuthorID] {
		n := &model.Notification{
			RecipientID: post.AuthorID,
			Type:        model.NotifyNewComment,
			ActorID:     actor.ID,
			ActorName:   actor.DisplayName,
			Payload:     commentPayload(post.ID, comment.ID),
		}
		if err := notifs.Insert(n); err != nil {
			return err
		}
		notified[post.AuthorID] = true
	}

	if parent != nil && !notified[parent.AuthorID] {
		n := &model.Notification{
			RecipientID: parent.AuthorID,
			Type:        model.NotifyNewReply,
			ActorID:     actor.ID,
			ActorName:   actor.DisplayName,
			Payload:     commentPayload(post.ID, comment.ID),
		}
		if err := notifs.Insert(n); err != nil {
			return err
		}
	}
	return nil
}

func commentPayload(postID, commentID uint64) string {
	return fmt.Sprintf(`{"post_id":%d,"comment_id":%d}`, postID, commentID)
}

func (s *CommentService) UpdateComment(viewerID, commentID uint64, content string) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}
	if n := utf8.RuneCountInString(content); n == 0 || n > MaxCommentLen {
		return apperr.Validation("comment must be 1-500 characters")
	}

	comment, err := s.comments.FindActive(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("comment", commentID)
	}
	if err != nil {
		return err
	}
	if !permission.CanEditContent(viewer, comment.AuthorID) {
		return apperr.Forbidden("cannot edit this comment")
	}
	return s.comments.UpdateFields(commentID, map[string]any{
		"content":   content,
		"edited_at": time.Now(),
	})
}

// DeleteComment 软删；帖子的 comment_count 有意不减（产品决策，不是漏网）
func (s *CommentService) DeleteComment(viewerID, commentID uint64) error {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return err
	}
	if err = permission.RequireAuth(viewer); err != nil {
		return err
	}

	comment, err := s.comments.FindAny(commentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound("comment", commentID)
	}
	if err != nil {
		return err
	}
	if !permission.CanDeleteContent(viewer, comment.AuthorID) {
		return apperr.NotFound("comment", commentID)
	}
	if comment.DeletedAt != nil {
		return apperr.Conflict("comment already deleted")
	}
	return s.comments.SoftDelete(commentID, time.Now())
}

// CommentView 嵌套视图节点
type CommentView struct {
	ID            uint64        `json:"id"`
	Content       string        `json:"content"`
	AuthorID      uint64        `json:"author_id"`
	AuthorName    string        `json:"author_name"`
	AuthorAvatar  string        `json:"author_avatar"`
	AuthorLevel   int           `json:"author_level"`
	LikeCount     int64         `json:"like_count"`
	LikedByViewer bool          `json:"liked_by_viewer"`
	IsOwner       bool          `json:"is_owner"`
	Deleted       bool          `json:"deleted"`
	EditedAt      *time.Time    `json:"edited_at,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	Replies       []CommentView `json:"replies"`
}

// ListByPost 嵌套视图：根评论新的在前，每条根下的回复旧的在前 ——
// 新话题浮到页首，话题内部按时间顺读。软删评论保留占位，子回复照常展示。
// 空间可见性不过关时按 NotFound 处理，与帖子列表一致
func (s *CommentService) ListByPost(viewerID, postID uint64) ([]CommentView, error) {
	viewer, err := loadViewer(s.profiles, viewerID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.FindActive(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post", postID)
		}
		return nil, err
	}

	space, err := s.spaces.FindActive(post.SpaceID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("post", postID)
	}
	if err != nil {
		return nil, err
	}
	var membership *model.Membership
	if viewer != nil {
		if membership, err = s.memberships.FindByUser(viewer.ID); err != nil {
			return nil, err
		}
	}
	if !permission.CanViewSpace(viewer, space, membership) {
		return nil, apperr.NotFound("post", postID)
	}

	all, err := s.comments.ListByPost(postID)
	if err != nil {
		return nil, err
	}

	// 等级是实时查档案，不用快照
	authorIDs := make([]uint64, 0, len(all))
	commentIDs := make([]uint64, 0, len(all))
	for _, c := range all {
		authorIDs = append(authorIDs, c.AuthorID)
		commentIDs = append(commentIDs, c.ID)
	}
	authors, err := s.profiles.FindByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	liked, err := s.likes.LikedSet(viewerID, model.LikeComment, commentIDs)
	if err != nil {
		return nil, err
	}

	toView := func(c *model.Comment) CommentView {
		v := CommentView{
			ID:            c.ID,
			Content:       c.Content,
			AuthorID:      c.AuthorID,
			AuthorName:    c.AuthorName,
			AuthorAvatar:  c.AuthorAvatar,
			LikeCount:     c.LikeCount,
			LikedByViewer: liked[c.ID],
			IsOwner:       viewerID != 0 && c.AuthorID == viewerID,
			EditedAt:      c.EditedAt,
			CreatedAt:     c.CreatedAt,
			Replies:       []CommentView{},
		}
		if p, ok := authors[c.AuthorID]; ok {
			v.AuthorLevel = model.LevelForPoints(p.Points)
		}
		if c.DeletedAt != nil {
			v.Deleted = true
			v.Content = DeletedContentSentinel
		}
		return v
	}

	var roots []CommentView
	replies := make(map[uint64][]CommentView)
	for i := range all {
		c := &all[i]
		if c.ParentID == nil {
			roots = append(roots, toView(c))
		} else {
			replies[*c.ParentID] = append(replies[*c.ParentID], toView(c))
		}
	}

	// 根：时间倒序；回复：时间正序
	sort.Slice(roots, func(i, j int) bool {
		if !roots[i].CreatedAt.Equal(roots[j].CreatedAt) {
			return roots[i].CreatedAt.After(roots[j].CreatedAt)
		}
		return roots[i].ID > roots[j].ID
	})
	for i := range roots {
		rs := replies[roots[i].ID]
		sort.Slice(rs, func(a, b int) bool {
			if !rs[a].CreatedAt.Equal(rs[b].CreatedAt) {
				return rs[a].CreatedAt.Before(rs[b].CreatedAt)
			}
			return rs[a].ID < rs[b].ID
		})
		roots[i].Replies = rs
	}
	return roots, nil
}
