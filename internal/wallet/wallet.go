package wallet

import (
	"errors"
	"sync"
)

// EventKind 定义了触发奖励计算的互动事件类型
type EventKind string

const (
	// EventLike 表示点赞（每帖每会话只发放一次）
	EventLike EventKind = "like"
	// EventComment 表示发表评论
	EventComment EventKind = "comment"
	// EventShare 表示分享（首次分享免费，第二次起计分）
	EventShare EventKind = "share"
	// EventView 表示完整浏览一条帖子
	EventView EventKind = "view"
	// EventSave 表示收藏，不计分
	EventSave EventKind = "save"
	// EventFollow 表示关注/取关切换
	EventFollow EventKind = "follow"
	// EventSpin 表示轮盘抽奖，结果走待发放通道，不直接计分
	EventSpin EventKind = "spin"
)

// 奖励分值表（加成前）
const (
	likePoints    = 10
	commentPoints = 50
	sharePoints   = 100
	viewPoints    = 5
	adViewPoints  = 40
	followPoints  = 5
	bonusPoints   = 500
)

// DailyBonusPoints 是每日奖励的固定金额（加成前）
const DailyBonusPoints = bonusPoints

var (
	// ErrInsufficientCoins 表示余额不足以完成兑换
	ErrInsufficientCoins = errors.New("Flash Coins余额不足")
	// ErrLevelTooLow 表示等级不满足兑换门槛
	ErrLevelTooLow = errors.New("等级不满足兑换要求")
	// ErrNoPendingAward 表示没有可确认的待发放奖励
	ErrNoPendingAward = errors.New("没有待发放的轮盘奖励")
)

// UserStats 是钱包状态的只读快照，HUD和商店用它做展示与预校验
type UserStats struct {
	Coins       int  `json:"coins"`
	StreakDays  int  `json:"streakDays"`
	Level       int  `json:"level"`
	BoostActive bool `json:"boostActive"`
}

// Wallet 持有单个会话的Flash Coins余额和衍生状态。
// 所有变更都必须通过它的方法进行，等级永远由余额推导，不单独赋值。
type Wallet struct {
	mu          sync.Mutex
	coins       int
	streakDays  int
	level       int
	boostActive bool

	// 待发放的轮盘奖励：只有登录确认后才会进入余额
	pendingAmount int
	pendingPostID string
}

// newWallet 按会话引导值创建钱包
func newWallet() *Wallet {
	return &Wallet{
		coins:      120,
		streakDays: 3,
		level:      1,
	}
}

// levelFor 是从余额推导等级的纯函数
func levelFor(coins int) int {
	return coins/1000 + 1
}

// BasePoints 根据事件类型返回加成前的奖励分值。
// isAd 只对浏览事件有意义；shareCount 是本次分享后的累计次数，
// 首次分享(shareCount==1)不计分。
func BasePoints(kind EventKind, isAd bool, shareCount int) int {
	switch kind {
	case EventLike:
		return likePoints
	case EventComment:
		return commentPoints
	case EventShare:
		if shareCount >= 2 {
			return sharePoints
		}
		return 0
	case EventView:
		if isAd {
			return adViewPoints
		}
		return viewPoints
	case EventFollow:
		return followPoints
	default:
		// save和spin不直接计分
		return 0
	}
}

// AddCoins 把加成前的分值计入余额，返回实际发放的金额。
// 加成激活时非零分值翻倍；每次变更后重新推导等级。
func (w *Wallet) AddCoins(base int) int {
	if base <= 0 {
		return 0
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	granted := base
	if w.boostActive {
		granted *= 2
	}
	w.coins += granted
	w.level = levelFor(w.coins)
	return granted
}

// Redeem 校验并扣除一次兑换的费用。
// 余额或等级不满足时返回错误且状态不变；前置条件保证扣除后余额非负。
func (w *Wallet) Redeem(cost int, minLevel int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.coins < cost {
		return ErrInsufficientCoins
	}
	if w.level < minLevel {
		return ErrLevelTooLow
	}

	w.coins -= cost
	w.level = levelFor(w.coins)
	return nil
}

// ActivateBoost 激活双倍加成。本设计中加成不随时间过期，随会话结束消失。
func (w *Wallet) ActivateBoost() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.boostActive = true
}

// StagePending 暂存一笔轮盘奖励，等待登录确认。
// 新的抽奖会覆盖旧的暂存金额——放弃登录即视为放弃奖励。
func (w *Wallet) StagePending(postID string, amount int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pendingPostID = postID
	w.pendingAmount = amount
}

// CommitPending 在登录确认成功后，把暂存的轮盘奖励计入余额。
// 加成在确认时刻应用。postID必须与暂存的一致，防止过期票据兑付。
func (w *Wallet) CommitPending(postID string) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pendingAmount == 0 || w.pendingPostID != postID {
		return 0, ErrNoPendingAward
	}

	granted := w.pendingAmount
	if w.boostActive {
		granted *= 2
	}
	w.coins += granted
	w.level = levelFor(w.coins)
	w.pendingAmount = 0
	w.pendingPostID = ""
	return granted, nil
}

// PendingAmount 返回当前暂存的轮盘奖励金额，0表示没有
func (w *Wallet) PendingAmount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pendingAmount
}

// Snapshot 返回钱包状态的只读副本
func (w *Wallet) Snapshot() UserStats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return UserStats{
		Coins:       w.coins,
		StreakDays:  w.streakDays,
		Level:       w.level,
		BoostActive: w.boostActive,
	}
}
