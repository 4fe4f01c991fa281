package handler

import (
	"net/http"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type SpaceHandler struct {
	svc *service.SpaceService
}

func NewSpaceHandler(svc *service.SpaceService) *SpaceHandler {
	return &SpaceHandler{svc: svc}
}

type SpaceReq struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	Visibility     string `json:"visibility"`
	PostPermission string `json:"post_permission"`
	RequiredTier   string `json:"required_tier"`
}

func (r *SpaceReq) toInput() service.SpaceInput {
	return service.SpaceInput{
		Name:           r.Name,
		Description:    r.Description,
		Icon:           r.Icon,
		Visibility:     model.SpaceVisibility(r.Visibility),
		PostPermission: model.PostPermission(r.PostPermission),
		RequiredTier:   r.RequiredTier,
	}
}

// CreateSpace 创建空间（admin）
func (h *SpaceHandler) CreateSpace(c *gin.Context) {
	var req SpaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	sp, err := h.svc.CreateSpace(viewerID(c), req.toInput())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sp.ID, "order": sp.Order})
}

func (h *SpaceHandler) UpdateSpace(c *gin.Context) {
	spaceID, ok := pathID(c)
	if !ok {
		return
	}
	var req SpaceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.UpdateSpace(viewerID(c), spaceID, req.toInput()); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": spaceID})
}

func (h *SpaceHandler) DeleteSpace(c *gin.Context) {
	spaceID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteSpace(viewerID(c), spaceID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "deleted"})
}

type ReorderReq struct {
	OrderedIDs []uint64 `json:"ordered_ids"`
}

// Reorder 整体重排，必须覆盖全部在用空间
func (h *SpaceHandler) Reorder(c *gin.Context) {
	var req ReorderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	if err := h.svc.ReorderSpaces(viewerID(c), req.OrderedIDs); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "reordered"})
}

// List 可见空间列表，带未读标记
func (h *SpaceHandler) List(c *gin.Context) {
	list, err := h.svc.List(viewerID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Visit 记录访问时间，清除未读
func (h *SpaceHandler) Visit(c *gin.Context) {
	spaceID, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.MarkVisited(viewerID(c), spaceID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
