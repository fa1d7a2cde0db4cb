package feed

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/session"
)

// --- API请求与响应模型 ---
type ScrollRequest struct {
	Index int    `json:"index"`
	Tab   string `json:"tab"`
}
type FeedResponse struct {
	Posts       []post.FeedPost `json:"posts"`
	ActiveIndex int             `json:"activeIndex"`
	EmptyState  string          `json:"emptyState,omitempty"`
}

// followingEmptyState 是关注页没有内容时的提示文案
const followingEmptyState = `Siga criadores na aba "Para você" para ver o conteúdo deles aqui.`

func feedResponse(f *Feed, tab string, following map[string]bool) FeedResponse {
	resp := FeedResponse{
		Posts:       f.VisiblePosts(tab, following),
		ActiveIndex: f.ActiveIndex(),
	}
	if tab == TabFollowing && len(resp.Posts) == 0 {
		resp.EmptyState = followingEmptyState
	}
	return resp
}

// GetFeed 处理 GET /feed?tab=
func GetFeed(c *gin.Context) {
	sessionID := session.ID(c)
	tab := c.DefaultQuery("tab", TabForYou)
	if tab != TabForYou && tab != TabFollowing {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的标签页"})
		return
	}

	f := ForSession(sessionID)
	following := interaction.LedgerForSession(sessionID).FollowingSet()
	c.JSON(http.StatusOK, feedResponse(f, tab, following))
}

// ScrollSettled 处理 POST /feed/scroll
// 客户端在滚动停稳后上报新位置，服务端在接近末尾时扩展Feed并返回最新序列。
func ScrollSettled(c *gin.Context) {
	sessionID := session.ID(c)

	var req ScrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}
	if req.Index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的位置"})
		return
	}
	tab := req.Tab
	if tab == "" {
		tab = TabForYou
	}
	if tab != TabForYou && tab != TabFollowing {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未知的标签页"})
		return
	}

	f := ForSession(sessionID)

	// 只有"为你推荐"页会无限扩展，关注页只是目录的过滤视图
	if tab == TabForYou {
		f.OnScrollSettled(req.Index, interaction.InterestsForSession(sessionID))
	}

	following := interaction.LedgerForSession(sessionID).FollowingSet()
	c.JSON(http.StatusOK, feedResponse(f, tab, following))
}
