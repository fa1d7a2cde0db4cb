package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/uolflash/flash-feed-backend/pkg/lifecycle"
)

// sweepInterval 是会话回收器两次巡查之间的间隔
const sweepInterval = time.Minute

// EvictHook 是各模块注册的会话状态清理函数
type EvictHook func(sessionID string)

// registry 记录所有在线会话的最近活跃时间，并持有各模块的清理钩子
type registry struct {
	mu       sync.Mutex
	lastSeen map[string]time.Time
	hooks    []EvictHook

	// StartedAt 按会话记录首次出现时间，每日奖励倒计时从这里起算
	startedAt map[string]time.Time
}

var globalRegistry = &registry{
	lastSeen:  make(map[string]time.Time),
	startedAt: make(map[string]time.Time),
}

// Touch 刷新一个会话的活跃时间。由cookie中间件在每个请求上调用。
func Touch(sessionID string) {
	if sessionID == "" {
		return
	}
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	now := time.Now()
	if _, ok := globalRegistry.startedAt[sessionID]; !ok {
		globalRegistry.startedAt[sessionID] = now
	}
	globalRegistry.lastSeen[sessionID] = now
}

// StartedAt 返回会话的首次出现时间。未知会话返回当前时间。
func StartedAt(sessionID string) time.Time {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	if t, ok := globalRegistry.startedAt[sessionID]; ok {
		return t
	}
	return time.Now()
}

// RegisterEvictHook 注册一个会话回收时的清理函数。
// 各模块在路由装配阶段注册自己的RemoveSession。
func RegisterEvictHook(hook EvictHook) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.hooks = append(globalRegistry.hooks, hook)
}

// evictIdleSessions 回收所有空闲超过ttl的会话，返回回收数量
func evictIdleSessions(ttl time.Duration) int {
	globalRegistry.mu.Lock()
	cutoff := time.Now().Add(-ttl)
	var expired []string
	for id, seen := range globalRegistry.lastSeen {
		if seen.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	for _, id := range expired {
		delete(globalRegistry.lastSeen, id)
		delete(globalRegistry.startedAt, id)
	}
	hooks := globalRegistry.hooks
	globalRegistry.mu.Unlock()

	// 钩子在锁外执行，各模块内部自己加锁
	for _, id := range expired {
		for _, hook := range hooks {
			hook(id)
		}
	}
	return len(expired)
}

// StartJanitor 启动后台会话回收器。
// 它定期清理空闲会话的全部状态——这是"会话级、重载即重置"语义的服务端实现。
func StartJanitor(handle *lifecycle.Handle, idleTTL time.Duration) {
	go func() {
		defer handle.Close()
		fmt.Println("会话回收器 (Session Janitor) 已启动。")

		for {
			if err := handle.Sleep(sweepInterval); err != nil {
				fmt.Println("Session Janitor: 收到停机信号，退出。")
				return
			}
			if n := evictIdleSessions(idleTTL); n > 0 {
				fmt.Printf("会话回收器: 已回收 %d 个空闲会话。\n", n)
			}
		}
	}()
}
