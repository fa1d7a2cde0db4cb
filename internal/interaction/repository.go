package interaction

import "sync"

// state 是一个会话在interaction模块内的全部状态
type state struct {
	ledger    *Ledger
	interests *InterestSet
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
	s = &state{ledger: newLedger(), interests: newInterestSet()}
	registry[sessionID] = s
	return s
}

// LedgerForSession 返回一个会话的互动账本，不存在时创建
func LedgerForSession(sessionID string) *Ledger {
	return forSession(sessionID).ledger
}

// InterestsForSession 返回一个会话的兴趣列表，不存在时创建
func InterestsForSession(sessionID string) *InterestSet {
	return forSession(sessionID).interests
}

// RemoveSession 清除一个会话的全部互动状态。由会话回收器调用。
func RemoveSession(sessionID string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	delete(registry, sessionID)
}
