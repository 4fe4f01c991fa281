package handler

import (
	"net/http"

	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

type CreateCommentReq struct {
	PostID   uint64  `json:"post_id"`
	Content  string  `json:"content"`
	ParentID *uint64 `json:"parent_id"`
}

// CreateComment 发表评论，parent_id 为空则为根评论
func (h *CommentHandler) CreateComment(c *gin.Context) {
	var req CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	id, err := h.svc.CreateComment(viewerID(c), req.PostID, req.Content, req.ParentID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type UpdateCommentReq struct {
	Content string `json:"content"`
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateComment(viewerID(c), commentID, req.Content); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": commentID})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteComment(viewerID(c), commentID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

// ListByPost 帖子下全部评论，两级结构
func (h *CommentHandler) ListByPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	list, err := h.svc.ListByPost(viewerID(c), postID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
