package interaction

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/wallet"
)

// PostInfo 是互动处理所需的帖子元数据。
// 帖子可能来自目录，也可能是会话内生成的，由feed模块统一解析。
type PostInfo struct {
	ID        string
	Category  string
	AuthorID  string
	IsAd      bool
	Cataloged bool
}

// resolvePost 由feed模块在路由装配时注入，先查会话Feed再查目录
var resolvePost func(sessionID, postID string) (PostInfo, bool)

// SetPostResolver 注入帖子解析函数
func SetPostResolver(fn func(sessionID, postID string) (PostInfo, bool)) {
	resolvePost = fn
}

// --- API请求与响应模型 ---
type InteractionRequest struct {
	PostID string `json:"postId" binding:"required"`
	Type   string `json:"type" binding:"required"`
	// Comment 是评论内容，仅评论事件使用
	Comment string `json:"comment"`
}
type InteractionResponse struct {
	Granted     int  `json:"granted"`
	Balance     int  `json:"balance"`
	Level       int  `json:"level"`
	BoostActive bool `json:"boostActive"`
	Liked       bool `json:"liked,omitempty"`
	Saved       bool `json:"saved,omitempty"`
	Following   bool `json:"following,omitempty"`
	ShareCount  int  `json:"shareCount,omitempty"`
}
type InterestsRequest struct {
	Interests []string `json:"interests"`
}
type ProfileResponse struct {
	Stats        wallet.UserStats `json:"stats"`
	SavedPostIDs []string         `json:"savedPostIds"`
	Interests    []string         `json:"interests"`
	Following    []string         `json:"following"`
}

// RecordInteraction 处理 POST /interactions
// 它应用互动的一次性规则，计算奖励并入账，然后刷新兴趣和全局互动计数。
func RecordInteraction(c *gin.Context) {
	sessionID := session.ID(c)

	var req InteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	kind := wallet.EventKind(req.Type)
	switch kind {
	case wallet.EventLike, wallet.EventComment, wallet.EventShare, wallet.EventView, wallet.EventSave, wallet.EventFollow:
	case wallet.EventSpin:
		c.JSON(http.StatusBadRequest, gin.H{"error": "轮盘抽奖请使用 /roulette 接口"})
		return
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的互动类型"})
		return
	}

	if resolvePost == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "服务内部错误"})
		return
	}
	info, ok := resolvePost(sessionID, req.PostID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "帖子不存在"})
		return
	}

	ledger := LedgerForSession(sessionID)
	w := wallet.ForSession(sessionID)

	// 1. 应用账本规则，决定本次事件的计分基数
	base := 0
	resp := InteractionResponse{}
	engagementKind := ""

	switch kind {
	case wallet.EventLike:
		first := ledger.Like(req.PostID)
		resp.Liked = true
		if first {
			base = wallet.BasePoints(kind, info.IsAd, 0)
			engagementKind = "like"
		}
	case wallet.EventComment:
		if strings.TrimSpace(req.Comment) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "评论内容不能为空"})
			return
		}
		base = wallet.BasePoints(kind, info.IsAd, 0)
		engagementKind = "comment"
	case wallet.EventShare:
		count := ledger.RecordShare(req.PostID)
		resp.ShareCount = count
		// 超出滑动窗口限额的分享只更新本地计数，不发奖也不计热度
		if AllowShare(sessionID, time.Now()) {
			base = wallet.BasePoints(kind, info.IsAd, count)
			engagementKind = "share"
		}
	case wallet.EventView:
		if ledger.MarkViewed(req.PostID) {
			base = wallet.BasePoints(kind, info.IsAd, 0)
		}
	case wallet.EventSave:
		resp.Saved = ledger.ToggleSave(req.PostID)
	case wallet.EventFollow:
		if info.AuthorID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "帖子没有可关注的作者"})
			return
		}
		resp.Following = ledger.ToggleFollow(info.AuthorID)
		base = wallet.BasePoints(kind, info.IsAd, 0)
	}

	// 2. 入账。加成和等级重算都在钱包内完成。
	resp.Granted = w.AddCoins(base)

	// 3. 除完整浏览外，互动都会刷新兴趣
	if kind != wallet.EventView {
		InterestsForSession(sessionID).Touch(info.Category)
	}

	// 4. 目录帖的互动计入全局热度（尽力而为）
	if engagementKind != "" && info.Cataloged {
		post.IncrementEngagement(req.PostID, engagementKind)
	}

	stats := w.Snapshot()
	resp.Balance = stats.Coins
	resp.Level = stats.Level
	resp.BoostActive = stats.BoostActive
	c.JSON(http.StatusOK, resp)
}

// UpdateInterests 处理 PUT /interests
func UpdateInterests(c *gin.Context) {
	sessionID := session.ID(c)

	var req InterestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	set := InterestsForSession(sessionID)
	set.Replace(req.Interests)
	c.JSON(http.StatusOK, gin.H{"interests": set.List()})
}

// GetProfile 处理 GET /profile
func GetProfile(c *gin.Context) {
	sessionID := session.ID(c)

	ledger := LedgerForSession(sessionID)
	following := ledger.FollowingSet()
	followingIDs := make([]string, 0, len(following))
	for id := range following {
		followingIDs = append(followingIDs, id)
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Stats:        wallet.ForSession(sessionID).Snapshot(),
		SavedPostIDs: ledger.SavedIDs(),
		Interests:    InterestsForSession(sessionID).List(),
		Following:    followingIDs,
	})
}
