package interaction

import "sync"

// maxInterests 是兴趣列表的容量上限
const maxInterests = 5

// defaultInterests 是新会话的初始兴趣
var defaultInterests = []string{"general"}

// InterestSet 维护一个会话的兴趣列表，按最近互动排序。
// 列表头部是最新的兴趣，生成器用它来决定新内容的主题。
type InterestSet struct {
	mu        sync.Mutex
	interests []string
}

func newInterestSet() *InterestSet {
	s := &InterestSet{}
	s.interests = append(s.interests, defaultInterests...)
	return s
}

// Touch 把一个分类提升为最新兴趣。
// 已存在的分类不移动位置，新分类插入头部，超出容量时淘汰尾部。
func (s *InterestSet) Touch(category string) {
	if category == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.interests {
		if it == category {
			return
		}
	}
	s.interests = append([]string{category}, s.interests...)
	if len(s.interests) > maxInterests {
		s.interests = s.interests[:maxInterests]
	}
}

// Replace 用给定列表整体替换兴趣，超出容量的部分被截断。
// 空列表会被重置为初始兴趣。
func (s *InterestSet) Replace(interests []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(interests) == 0 {
		s.interests = append([]string(nil), defaultInterests...)
		return
	}
	if len(interests) > maxInterests {
		interests = interests[:maxInterests]
	}
	s.interests = append([]string(nil), interests...)
}

// List 返回兴趣列表的副本，头部为最新
func (s *InterestSet) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.interests))
	copy(out, s.interests)
	return out
}

// Top 返回最新的兴趣。列表为空时返回初始兴趣。
func (s *InterestSet) Top() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.interests) == 0 {
		return defaultInterests[0]
	}
	return s.interests[0]
}
