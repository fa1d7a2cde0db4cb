package api

import (
	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/bonus"
	"github.com/uolflash/flash-feed-backend/internal/feed"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/roulette"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/store"
)

// SetupRoutes 注册项目的所有API路由
// 所有路由都挂在会话Cookie中间件之后，每个请求都有确定的会话ID。
func SetupRoutes(router *gin.Engine) {
	// 模块间的解析函数在这里接线
	interaction.SetPostResolver(feed.ResolvePost)

	api := router.Group("/api", session.EnsureSessionCookieMiddleware())
	{
		// Feed相关的路由
		api.GET("/feed", feed.GetFeed)
		api.POST("/feed/scroll", feed.ScrollSettled)

		// 帖子目录相关的路由
		api.GET("/posts/trending", post.GetTrending)
		api.GET("/posts/:id", post.GetPost)
		api.GET("/posts/:id/share-card", post.GetShareCard)

		// 互动与个人资料相关的路由
		api.POST("/interactions", interaction.RecordInteraction)
		api.PUT("/interests", interaction.UpdateInterests)
		api.GET("/profile", interaction.GetProfile)

		// 奖励商店相关的路由
		api.GET("/store", store.GetStore)
		api.POST("/store/redeem", store.Redeem)

		// 轮盘抽奖相关的路由
		api.POST("/roulette/spin", roulette.SpinHandler)
		api.POST("/roulette/commit", roulette.CommitHandler)

		// 每日奖励相关的路由
		api.GET("/bonus", bonus.GetStatus)
		api.POST("/bonus/claim", bonus.Claim)
	}
}
