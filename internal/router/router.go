package router

import (
	"Orbit_Community/internal/handler"
	"Orbit_Community/internal/middleware"
	"Orbit_Community/internal/pkg"
	"Orbit_Community/internal/repository/mysql"
	"Orbit_Community/internal/service"

	"github.com/gin-gonic/gin"
)

func InitRouter(store pkg.BlobStore) *gin.Engine {
	r := gin.Default()

	// 配置邮件环境
	emailCfg := pkg.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "no-reply@example.com",
		Password: "apple123456",
		From:     "NoReply <no-reply@example.com>",
	}

	emailSvc := service.NewEmailService(emailCfg)
	profileSvc := service.NewProfileService(mysql.DB)
	var mediaSvc *service.MediaService
	if store != nil {
		mediaSvc = service.NewMediaService(store)
	}

	user := handler.NewUserHandler(service.NewUserService(mysql.DB, emailSvc))
	email := handler.NewEmailHandler(emailSvc)
	profile := handler.NewProfileHandler(profileSvc)
	space := handler.NewSpaceHandler(service.NewSpaceService(mysql.DB))
	post := handler.NewPostHandler(service.NewPostService(mysql.DB), mediaSvc)
	comment := handler.NewCommentHandler(service.NewCommentService(mysql.DB))
	like := handler.NewLikeHandler(service.NewLikeService(mysql.DB))
	feed := handler.NewFeedHandler(service.NewFeedService(mysql.DB), mediaSvc)
	notification := handler.NewNotificationHandler(service.NewNotificationService(mysql.DB))
	follow := handler.NewFollowHandler(service.NewFollowService(mysql.DB))
	media := handler.NewMediaHandler(mediaSvc)

	auth := middleware.AuthMiddleware(profileSvc)
	optional := middleware.OptionalAuthMiddleware(profileSvc)

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/register/code", email.SendRegisterCode)
		emailGroup.POST("/reset/code", email.SendResetCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.Refresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// 主页相关接口
	profileGroup := r.Group("/api/profile")
	{
		profileGroup.GET("/leaderboard", profile.Leaderboard)
		profileGroup.GET("/info/:id", optional, profile.Get)
		profileGroup.GET("/me", auth, profile.Me)
		profileGroup.PUT("/me", auth, profile.Update)
	}

	// 空间相关接口：列表随登录态降级，管理操作需要 admin
	spaceGroup := r.Group("/api/space")
	{
		spaceGroup.GET("/list", optional, space.List)
		spaceGroup.POST("/visit/:id", auth, space.Visit)
		spaceGroup.POST("/create", auth, space.CreateSpace)
		spaceGroup.PUT("/:id", auth, space.UpdateSpace)
		spaceGroup.DELETE("/:id", auth, space.DeleteSpace)
		spaceGroup.POST("/reorder", auth, space.Reorder)
	}

	// 帖子相关接口
	postGroup := r.Group("/api/post")
	{
		postGroup.GET("/list/:id", optional, post.ListBySpace)
		postGroup.GET("/deleted", auth, post.ListDeleted)
		postGroup.POST("/create", auth, post.CreatePost)
		postGroup.PUT("/:id", auth, post.UpdatePost)
		postGroup.DELETE("/:id", auth, post.DeletePost)
		postGroup.POST("/restore/:id", auth, post.RestorePost)
		postGroup.POST("/pin/:id", auth, post.PinPost)
		postGroup.POST("/unpin/:id", auth, post.UnpinPost)
	}

	// 评论相关接口
	commentGroup := r.Group("/api/comment")
	{
		commentGroup.GET("/list/:id", optional, comment.ListByPost)
		commentGroup.POST("/create", auth, comment.CreateComment)
		commentGroup.PUT("/:id", auth, comment.UpdateComment)
		commentGroup.DELETE("/:id", auth, comment.DeleteComment)
	}

	// 点赞相关接口
	likeGroup := r.Group("/api/like")
	likeGroup.Use(auth)
	{
		likeGroup.POST("/toggle", like.Toggle)
	}

	// 信息流相关接口
	feedGroup := r.Group("/api/feed")
	{
		feedGroup.GET("/recent", optional, feed.Recent)
		feedGroup.GET("/popular", optional, feed.Popular)
		feedGroup.GET("/following", auth, feed.Following)
	}

	// 通知相关接口
	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(auth)
	{
		notificationGroup.GET("/list", notification.List)
		notificationGroup.POST("/:id/read", notification.MarkRead)
	}

	// 用户关注相关接口
	followGroup := r.Group("/api/follow")
	followGroup.Use(auth)
	{
		followGroup.POST("/:id", follow.Follow)
		followGroup.DELETE("/:id", follow.Unfollow)
		followGroup.GET("/:id", follow.IsFollowing)
	}

	// 媒体上传接口
	mediaGroup := r.Group("/api/media")
	mediaGroup.Use(auth)
	{
		mediaGroup.POST("/upload-url", media.RequestUpload)
	}

	return r
}
