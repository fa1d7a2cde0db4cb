package bonus

import (
	"sync"
	"time"

	"github.com/uolflash/flash-feed-backend/internal/session"
)

// CountdownDuration 是每日奖励解锁需要的在线时长
const CountdownDuration = 60 * time.Second

// state 记录一个会话的每日奖励领取状态
type state struct {
	mu       sync.Mutex
	deadline time.Time
	claimed  bool
}

var (
	registryMutex sync.RWMutex
	registry      = make(map[string]*state)
)

func forSession(sessionID string) *state {
	registryMutex.RLock()
	s, ok := registry[sessionID]
	registryMutex.RUnlock()
	if ok {
		return s
	}

	registryMutex.Lock()
	defer registryMutex.Unlock()
	if s, ok := registry[sessionID]; ok {
		return s
	}
	// 倒计时从会话首次出现时开始，而不是从第一次查询时开始
	s = &state{deadline: session.StartedAt(sessionID).Add(CountdownDuration)}
	registry[sessionID] = s
	return s
}

// RemoveSession 清除一个会话的每日奖励状态。由会话回收器调用。
func RemoveSession(sessionID string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	delete(registry, sessionID)
}

// status 返回剩余等待时间和领取状态
func (s *state) status(now time.Time) (remaining time.Duration, claimed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	remaining = s.deadline.Sub(now)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, s.claimed
}

// tryClaim 在倒计时结束且未领取过时标记为已领取
func (s *state) tryClaim(now time.Time) (ok bool, early bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Before(s.deadline) {
		return false, true
	}
	if s.claimed {
		return false, false
	}
	s.claimed = true
	return true, false
}
