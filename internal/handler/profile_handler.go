package handler

import (
	"net/http"
	"strconv"

	"Orbit_Community/internal/model"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me 当前登录用户的主页
func (h *ProfileHandler) Me(c *gin.Context) {
	id := viewerID(c)
	view, err := h.svc.Get(id, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Get 查看他人主页，私密主页对非本人隐藏
func (h *ProfileHandler) Get(c *gin.Context) {
	profileID, ok := pathID(c)
	if !ok {
		return
	}
	view, err := h.svc.Get(viewerID(c), profileID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type UpdateProfileReq struct {
	DisplayName  *string `json:"display_name"`
	Bio          *string `json:"bio"`
	AvatarRef    *string `json:"avatar_ref"`
	Visibility   *string `json:"visibility"`
	NotifyOnPost *bool   `json:"notify_on_post"`
	NotifyOnLike *bool   `json:"notify_on_like"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	var req UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	patch := service.ProfilePatch{
		DisplayName:  req.DisplayName,
		Bio:          req.Bio,
		AvatarRef:    req.AvatarRef,
		NotifyOnPost: req.NotifyOnPost,
		NotifyOnLike: req.NotifyOnLike,
	}
	if req.Visibility != nil {
		v := model.ProfileVisibility(*req.Visibility)
		patch.Visibility = &v
	}
	if err := h.svc.Update(viewerID(c), patch); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "updated"})
}

// Leaderboard 积分榜
func (h *ProfileHandler) Leaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	list, err := h.svc.Leaderboard(limit)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
