package handler

import (
	"net/http"
	"strconv"

	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	svc   *service.FeedService
	media *service.MediaService
}

func NewFeedHandler(svc *service.FeedService, media *service.MediaService) *FeedHandler {
	return &FeedHandler{svc: svc, media: media}
}

// Recent 全站最新流，游标分页
func (h *FeedHandler) Recent(c *gin.Context) {
	lastID, lastAt, size := cursorParams(c)
	page, err := h.svc.Recent(viewerID(c), lastID, lastAt, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, postPageJSON(c, page, h.media))
}

// Following 关注人的帖子流
func (h *FeedHandler) Following(c *gin.Context) {
	lastID, lastAt, size := cursorParams(c)
	page, err := h.svc.Following(c.Request.Context(), viewerID(c), lastID, lastAt, size)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, postPageJSON(c, page, h.media))
}

// Popular 热门流，offset 分页
func (h *FeedHandler) Popular(c *gin.Context) {
	offset, _ := strconv.Atoi(c.Query("offset"))
	size, _ := strconv.Atoi(c.Query("size"))
	page, err := h.svc.Popular(viewerID(c), offset, size)
	if err != nil {
		fail(c, err)
		return
	}
	out := gin.H{
		"list":     page.Posts,
		"has_more": page.HasMore,
	}
	if page.HasMore {
		out["next_offset"] = page.NextOffset
	}
	c.JSON(http.StatusOK, out)
}
