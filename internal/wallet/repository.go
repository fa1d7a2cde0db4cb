package wallet

import "sync"

// repository 按会话ID持有所有在线会话的钱包
type repository struct {
	mu      sync.RWMutex
	wallets map[string]*Wallet
}

var globalRepository = &repository{
	wallets: make(map[string]*Wallet),
}

// ForSession 返回指定会话的钱包，首次访问时按引导值创建。
func ForSession(sessionID string) *Wallet {
	globalRepository.mu.RLock()
	w, ok := globalRepository.wallets[sessionID]
	globalRepository.mu.RUnlock()
	if ok {
		return w
	}

	globalRepository.mu.Lock()
	defer globalRepository.mu.Unlock()
	// 双重检查，避免并发首次请求重复创建
	if w, ok := globalRepository.wallets[sessionID]; ok {
		return w
	}
	w = newWallet()
	globalRepository.wallets[sessionID] = w
	return w
}

// RemoveSession 丢弃一个会话的钱包。由会话回收器调用。
func RemoveSession(sessionID string) {
	globalRepository.mu.Lock()
	defer globalRepository.mu.Unlock()
	delete(globalRepository.wallets, sessionID)
}
