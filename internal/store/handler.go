package store

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/wallet"
)

// couponCharset 是兑换券码的字符集
const couponCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// processingDelay 模拟兑换的支付处理耗时。保持为变量是为了让测试可以缩短。
var processingDelay = 2 * time.Second

// --- API请求与响应模型 ---
type RewardItemResponse struct {
	Reward
	Affordable bool `json:"affordable"`
	LevelOK    bool `json:"levelOk"`
}
type SponsorItemResponse struct {
	post.Product
	Pitch string `json:"pitch,omitempty"`
}
type StoreResponse struct {
	Rewards  []RewardItemResponse  `json:"rewards"`
	Sponsors []SponsorItemResponse `json:"sponsors"`
	Stats    wallet.UserStats      `json:"stats"`
}
type RedeemRequest struct {
	RewardID string `json:"rewardId" binding:"required"`
}
type RedeemResponse struct {
	Coupon string           `json:"coupon,omitempty"`
	QR     string           `json:"qr,omitempty"`
	Stats  wallet.UserStats `json:"stats"`
}

// generateCouponCode 生成形如 FLASH-XXXXXX 的兑换券码
func generateCouponCode() (string, error) {
	code := make([]byte, 6)
	max := big.NewInt(int64(len(couponCharset)))
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = couponCharset[n.Int64()]
	}
	return "FLASH-" + string(code), nil
}

// GetStore 处理 GET /store
// 奖励附带可兑换标记，赞助商品按会话兴趣排到前面，并附带生成的导购文案。
func GetStore(c *gin.Context) {
	sessionID := session.ID(c)
	stats := wallet.ForSession(sessionID).Snapshot()
	interests := interaction.InterestsForSession(sessionID).List()
	interestSet := make(map[string]bool, len(interests))
	for _, it := range interests {
		interestSet[it] = true
	}

	rewards := Rewards()
	rewardItems := make([]RewardItemResponse, 0, len(rewards))
	for _, r := range rewards {
		rewardItems = append(rewardItems, RewardItemResponse{
			Reward:     r,
			Affordable: stats.Coins >= r.Cost,
			LevelOK:    stats.Level >= r.MinLevel,
		})
	}

	sponsors := post.SponsorProducts()
	sponsorItems := make([]SponsorItemResponse, 0, len(sponsors))
	for _, p := range sponsors {
		item := SponsorItemResponse{Product: p}
		if adviceClient != nil {
			item.Pitch = pitchFor(p.ProductID, p.Name)
		}
		sponsorItems = append(sponsorItems, item)
	}
	// 与兴趣匹配的商品排到前面，其余保持目录顺序
	sort.SliceStable(sponsorItems, func(i, j int) bool {
		return interestSet[sponsorItems[i].Category] && !interestSet[sponsorItems[j].Category]
	})

	c.JSON(http.StatusOK, StoreResponse{
		Rewards:  rewardItems,
		Sponsors: sponsorItems,
		Stats:    stats,
	})
}

// Redeem 处理 POST /store/redeem
// 兑换会经过一段模拟的支付处理，然后才真正扣币并签发券码。
// 特殊的Turbo Boost商品不扣币，只激活双倍加成。
func Redeem(c *gin.Context) {
	sessionID := session.ID(c)

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的请求体"})
		return
	}

	reward, ok := GetRewardByID(req.RewardID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "奖励不存在"})
		return
	}

	w := wallet.ForSession(sessionID)

	if reward.RewardID == BoostRewardID {
		time.Sleep(processingDelay)
		w.ActivateBoost()
		c.JSON(http.StatusOK, RedeemResponse{Stats: w.Snapshot()})
		return
	}

	// 1. 处理前预检，让用户在等待前就能看到失败原因
	stats := w.Snapshot()
	if stats.Level < reward.MinLevel {
		c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("需要达到 Nível %d 才能兑换", reward.MinLevel)})
		return
	}
	if stats.Coins < reward.Cost {
		c.JSON(http.StatusPaymentRequired, gin.H{"error": "Flash Coins 余额不足"})
		return
	}

	// 2. 模拟支付处理
	time.Sleep(processingDelay)

	// 3. 真正扣币。余额可能在等待期间变化，钱包内部会重新校验。
	if err := w.Redeem(reward.Cost, reward.MinLevel); err != nil {
		switch {
		case errors.Is(err, wallet.ErrInsufficientCoins):
			c.JSON(http.StatusPaymentRequired, gin.H{"error": "Flash Coins 余额不足"})
		case errors.Is(err, wallet.ErrLevelTooLow):
			c.JSON(http.StatusForbidden, gin.H{"error": fmt.Sprintf("需要达到 Nível %d 才能兑换", reward.MinLevel)})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "兑换失败"})
		}
		return
	}

	coupon, err := generateCouponCode()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成券码失败"})
		return
	}

	// QR码直接编码券码本身，由客户端渲染
	c.JSON(http.StatusOK, RedeemResponse{
		Coupon: coupon,
		QR:     coupon,
		Stats:  w.Snapshot(),
	})
}
