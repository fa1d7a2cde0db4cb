package bonus

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/wallet"
)

// --- API响应模型 ---
type StatusResponse struct {
	RemainingSeconds int  `json:"remainingSeconds"`
	Claimable        bool `json:"claimable"`
	Claimed          bool `json:"claimed"`
	Amount           int  `json:"amount"`
}
type ClaimResponse struct {
	Granted int `json:"granted"`
	Balance int `json:"balance"`
	Level   int `json:"level"`
}

// GetStatus 处理 GET /bonus
func GetStatus(c *gin.Context) {
	sessionID := session.ID(c)

	remaining, claimed := forSession(sessionID).status(time.Now())
	c.JSON(http.StatusOK, StatusResponse{
		RemainingSeconds: int(remaining / time.Second),
		Claimable:        remaining == 0 && !claimed,
		Claimed:          claimed,
		Amount:           wallet.DailyBonusPoints,
	})
}

// Claim 处理 POST /bonus/claim
// 每个会话只能领取一次，倒计时结束前领取会被拒绝。
func Claim(c *gin.Context) {
	sessionID := session.ID(c)

	ok, early := forSession(sessionID).tryClaim(time.Now())
	if !ok {
		if early {
			c.JSON(http.StatusConflict, gin.H{"error": "每日奖励还未解锁"})
		} else {
			c.JSON(http.StatusConflict, gin.H{"error": "每日奖励已经领取过了"})
		}
		return
	}

	w := wallet.ForSession(sessionID)
	granted := w.AddCoins(wallet.DailyBonusPoints)

	stats := w.Snapshot()
	c.JSON(http.StatusOK, ClaimResponse{
		Granted: granted,
		Balance: stats.Coins,
		Level:   stats.Level,
	})
}
