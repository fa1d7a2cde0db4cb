package interaction

import "sync"

// Ledger 记录单个会话内所有互动的一次性/累计状态。
// 奖励规则依赖这些状态：点赞每帖只计一次分，分享从第二次起计分，
// 浏览分每帖只发一次，轮盘每帖只能抽一次。
type Ledger struct {
	mu          sync.Mutex
	liked       map[string]bool
	saved       map[string]bool
	savedOrder  []string
	following   map[string]bool
	shareCounts map[string]int
	viewed      map[string]bool
	spun        map[string]bool
}

func newLedger() *Ledger {
	return &Ledger{
		liked:       make(map[string]bool),
		saved:       make(map[string]bool),
		following:   make(map[string]bool),
		shareCounts: make(map[string]int),
		viewed:      make(map[string]bool),
		spun:        make(map[string]bool),
	}
}

// Like 记录一次点赞。返回是否为该帖的首次点赞，重复点赞是幂等的。
func (l *Ledger) Like(postID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.liked[postID] {
		return false
	}
	l.liked[postID] = true
	return true
}

// HasLiked 返回该帖是否已被点赞
func (l *Ledger) HasLiked(postID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.liked[postID]
}

// ToggleSave 切换一条帖子的收藏状态，返回切换后的状态
func (l *Ledger) ToggleSave(postID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.saved[postID] {
		delete(l.saved, postID)
		for i, id := range l.savedOrder {
			if id == postID {
				l.savedOrder = append(l.savedOrder[:i], l.savedOrder[i+1:]...)
				break
			}
		}
		return false
	}
	l.saved[postID] = true
	l.savedOrder = append(l.savedOrder, postID)
	return true
}

// SavedIDs 按收藏顺序返回所有被收藏的帖子ID
func (l *Ledger) SavedIDs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.savedOrder))
	copy(out, l.savedOrder)
	return out
}

// ToggleFollow 切换对一位作者的关注状态，返回切换后的状态。
// 关注和取关都是一次有效的互动事件。
func (l *Ledger) ToggleFollow(authorID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.following[authorID] {
		delete(l.following, authorID)
		return false
	}
	l.following[authorID] = true
	return true
}

// FollowingSet 返回当前关注中的作者ID集合的副本
func (l *Ledger) FollowingSet() map[string]bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make(map[string]bool, len(l.following))
	for id := range l.following {
		out[id] = true
	}
	return out
}

// RecordShare 记录一次分享，返回该帖累计的分享次数。计数只增不减。
func (l *Ledger) RecordShare(postID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.shareCounts[postID]++
	return l.shareCounts[postID]
}

// MarkViewed 记录一次完整浏览。返回是否为该帖的首次浏览。
func (l *Ledger) MarkViewed(postID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.viewed[postID] {
		return false
	}
	l.viewed[postID] = true
	return true
}

// MarkSpun 记录一次轮盘抽奖。返回是否为该轮盘帖的首次抽奖。
func (l *Ledger) MarkSpun(postID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.spun[postID] {
		return false
	}
	l.spun[postID] = true
	return true
}
