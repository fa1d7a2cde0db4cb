package roulette

import (
	"errors"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/feed"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/wallet"
	"github.com/uolflash/flash-feed-backend/pkg/token"
)

// removalDelay 是奖励入账后轮盘帖从Feed退场的延迟，给前端留出庆祝动画时间。
// 保持为变量是为了让测试可以缩短。
var removalDelay = 2 * time.Second

var (
	rngMutex sync.Mutex
	rng      = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// spinWheel 在全局随机源上执行一次抽奖
var spinWheel = func() (int, float64) {
	rngMutex.Lock()
	defer rngMutex.Unlock()
	idx := Spin(rng)
	return idx, Rotation(idx, rng)
}

// --- API请求与响应模型 ---
type SpinRequest struct {
	PostID string `json:"postId" binding:"required"`
}
type SpinResponse struct {
	Rotation  float64 `json:"rotation"`
	Amount    int     `json:"amount"`
	Signature string  `json:"signature"`
}
type CommitRequest struct {
	PostID    string `json:"postId" binding:"required"`
	Amount    int    `json:"amount"`
	Signature string `json:"signature" binding:"required"`
}
type CommitResponse struct {
	Granted   int  `json:"granted"`
	Balance   int  `json:"balance"`
	Level     int  `json:"level"`
	Celebrate bool `json:"celebrate"`
}

// SpinHandler 处理 POST /roulette/spin
// 抽奖结果先暂存为待发放奖励，客户端播放完动画后凭签名提交入账。
func SpinHandler(c *gin.Context) {
	sessionID := session.ID(c)

	var req SpinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	target, ok := post.GetPostByID(req.PostID)
	if !ok {
		if target, ok = feed.ForSession(sessionID).Lookup(req.PostID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "帖子不存在"})
			return
		}
	}
	if target.Type != post.TypeRoulette {
		c.JSON(http.StatusBadRequest, gin.H{"error": "该帖子不是轮盘抽奖"})
		return
	}

	// 每个轮盘帖每会话只能抽一次
	if !interaction.LedgerForSession(sessionID).MarkSpun(req.PostID) {
		c.JSON(http.StatusConflict, gin.H{"error": "这个轮盘已经抽过了"})
		return
	}

	idx, rotation := spinWheel()
	amount := Segments[idx]

	// 暂存待发放奖励。再次抽其他轮盘会顶掉未提交的结果。
	wallet.ForSession(sessionID).StagePending(req.PostID, amount)

	signature, err := token.GenerateSpinSignature(token.SpinTicket{
		SessionID: sessionID,
		PostID:    req.PostID,
		Amount:    amount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "签发抽奖凭证失败"})
		return
	}

	c.JSON(http.StatusOK, SpinResponse{
		Rotation:  rotation,
		Amount:    amount,
		Signature: signature,
	})
}

// CommitHandler 处理 POST /roulette/commit
// 校验抽奖凭证后把待发放奖励真正入账，并安排轮盘帖从Feed退场。
func CommitHandler(c *gin.Context) {
	sessionID := session.ID(c)

	var req CommitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	ticket := token.SpinTicket{
		SessionID: sessionID,
		PostID:    req.PostID,
		Amount:    req.Amount,
	}
	if !token.ValidateSpinSignature(ticket, req.Signature) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "抽奖凭证无效"})
		return
	}

	w := wallet.ForSession(sessionID)
	granted, err := w.CommitPending(req.PostID)
	if err != nil {
		if errors.Is(err, wallet.ErrNoPendingAward) {
			c.JSON(http.StatusConflict, gin.H{"error": "没有待发放的抽奖奖励"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "奖励入账失败"})
		return
	}

	feed.RemovePostLater(sessionID, req.PostID, removalDelay)

	stats := w.Snapshot()
	c.JSON(http.StatusOK, CommitResponse{
		Granted:   granted,
		Balance:   stats.Coins,
		Level:     stats.Level,
		Celebrate: true,
	})
}
