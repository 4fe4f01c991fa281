package handler

import (
	"net/http"
	"strconv"
	"time"

	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc   *service.PostService
	media *service.MediaService
}

func NewPostHandler(svc *service.PostService, media *service.MediaService) *PostHandler {
	return &PostHandler{svc: svc, media: media}
}

type CreatePostReq struct {
	SpaceID     uint64   `json:"space_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ContentHTML string   `json:"content_html"`
	MediaRefs   []string `json:"media_refs"`
}

// CreatePost 创建帖子接口
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	id, err := h.svc.CreatePost(viewerID(c), req.SpaceID, req.Title, req.Content, req.ContentHTML, req.MediaRefs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

type UpdatePostReq struct {
	Title       *string  `json:"title"`
	Content     *string  `json:"content"`
	ContentHTML *string  `json:"content_html"`
	MediaRefs   []string `json:"media_refs"`
}

// UpdatePost 部分更新：没传的字段保持原值
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	err := h.svc.UpdatePost(viewerID(c), postID, service.PostPatch{
		Title:       req.Title,
		Content:     req.Content,
		ContentHTML: req.ContentHTML,
		MediaRefs:   req.MediaRefs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": postID})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeletePost(viewerID(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

func (h *PostHandler) RestorePost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.RestorePost(viewerID(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "restored"})
}

func (h *PostHandler) PinPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.PinPost(viewerID(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "pinned"})
}

func (h *PostHandler) UnpinPost(c *gin.Context) {
	postID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.UnpinPost(viewerID(c), postID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "unpinned"})
}

// ListBySpace 空间内帖子列表，(last_id, last_created_at) 游标
func (h *PostHandler) ListBySpace(c *gin.Context) {
	spaceID, ok := pathID(c)
	if !ok {
		return
	}
	lastID, lastAt, size := cursorParams(c)

	page, err := h.svc.ListBySpace(viewerID(c), spaceID, lastID, lastAt, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, postPageJSON(c, page, h.media))
}

// ListDeleted 回收站（admin）
func (h *PostHandler) ListDeleted(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.ListDeleted(viewerID(c), limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func pathID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}

func cursorParams(c *gin.Context) (uint64, time.Time, int) {
	lastID, _ := strconv.ParseUint(c.Query("last_id"), 10, 64)
	var lastAt time.Time
	if ts, err := strconv.ParseInt(c.Query("last_created_at"), 10, 64); err == nil && ts > 0 {
		lastAt = time.Unix(ts, 0)
	}
	size, _ := strconv.Atoi(c.Query("size"))
	return lastID, lastAt, size
}

func postPageJSON(c *gin.Context, page *service.PostPage, media *service.MediaService) gin.H {
	out := gin.H{
		"list":     page.Posts,
		"has_more": page.HasMore,
	}
	if page.HasMore {
		out["next_last_id"] = page.NextLastID
		out["next_created_at"] = page.NextLastAt.Unix()
	}
	if media != nil {
		urls := make(map[uint64][]string)
		for i := range page.Posts {
			if page.Posts[i].MediaRefs != "" {
				urls[page.Posts[i].ID] = media.ResolveRefs(c.Request.Context(), page.Posts[i].MediaRefs)
			}
		}
		if len(urls) > 0 {
			out["media_urls"] = urls
		}
	}
	return out
}
