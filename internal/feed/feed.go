package feed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/uolflash/flash-feed-backend/internal/generator"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/post"
)

// Tab 名称
const (
	TabForYou    = "foryou"
	TabFollowing = "following"
)

const (
	// fetchThreshold 表示当前位置距离Feed末尾多少条时触发生成
	fetchThreshold = 2
	// adProbability 是新生成内容为原生广告的概率
	adProbability = 0.3
	// generateTimeout 是单次生成调用的超时
	generateTimeout = 12 * time.Second
)

// adRoll 返回本次生成是否应为广告。保持为变量是为了让测试可以固定结果。
var adRoll = func() bool {
	return rand.Float64() < adProbability
}

// client 由路由装配时注入
var client generator.Client

// Configure 注入内容生成客户端
func Configure(c generator.Client) {
	client = c
}

// Feed 是单个会话的帖子流状态。
// 它以目录的初始序列开头，随着滚动不断追加生成内容，会话回收时整体丢弃。
type Feed struct {
	mu          sync.Mutex
	posts       []post.FeedPost
	activeIndex int
}

var (
	registryMutex sync.RWMutex
	registry      = make(map[string]*Feed)
)

// ForSession 返回一个会话的Feed，不存在时用目录初始序列创建
func ForSession(sessionID string) *Feed {
	registryMutex.RLock()
	f, ok := registry[sessionID]
	registryMutex.RUnlock()
	if ok {
		return f
	}

	registryMutex.Lock()
	defer registryMutex.Unlock()
	if f, ok := registry[sessionID]; ok {
		return f
	}
	f = &Feed{posts: post.InitialFeed()}
	registry[sessionID] = f
	return f
}

// RemoveSession 清除一个会话的Feed状态。由会话回收器调用。
func RemoveSession(sessionID string) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	delete(registry, sessionID)
}

// Posts 返回Feed当前的帖子序列副本
func (f *Feed) Posts() []post.FeedPost {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]post.FeedPost, len(f.posts))
	copy(out, f.posts)
	return out
}

// ActiveIndex 返回当前浏览位置
func (f *Feed) ActiveIndex() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.activeIndex
}

// Lookup 在Feed中按ID查找帖子
func (f *Feed) Lookup(postID string) (post.FeedPost, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.posts {
		if p.ID == postID {
			return p, true
		}
	}
	return post.FeedPost{}, false
}

// Remove 从Feed中移除一条帖子，并在必要时回拉浏览位置
func (f *Feed) Remove(postID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.posts {
		if p.ID == postID {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			if f.activeIndex >= len(f.posts) && f.activeIndex > 0 {
				f.activeIndex = len(f.posts) - 1
			}
			return
		}
	}
}

// OnScrollSettled 记录新的浏览位置，并在接近Feed末尾时扩展内容。
// 扩展永远成功：生成失败时追加固定的兜底帖，用户不会看到错误。
func (f *Feed) OnScrollSettled(index int, interests *interaction.InterestSet) {
	f.mu.Lock()
	if index >= 0 && index < len(f.posts) {
		f.activeIndex = index
	}
	needMore := index >= len(f.posts)-fetchThreshold
	f.mu.Unlock()

	if !needMore {
		return
	}

	next := f.generateNext(interests)

	f.mu.Lock()
	f.posts = append(f.posts, next)
	f.mu.Unlock()
}

// generateNext 生成一条新帖子，失败时返回兜底帖
func (f *Feed) generateNext(interests *interaction.InterestSet) post.FeedPost {
	if client == nil {
		return post.NewFallbackPost()
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	generated, err := client.GenerateFeedItem(ctx, interests.List(), adRoll())
	if err != nil {
		if err != generator.ErrUnavailable {
			fmt.Printf("扩展Feed失败: %v\n", err)
		}
		return post.NewFallbackPost()
	}

	// 生成帖的ID和分类由服务端决定，不信任模型输出
	generated.ID = uuid.NewString()
	generated.Category = interests.Top()
	if generated.ContentURL == "" {
		generated.ContentURL = "https://picsum.photos/seed/" + generated.ID + "/1080/1920"
	}
	return *generated
}

// VisiblePosts 返回某个标签页下可见的帖子序列。
// 关注页只保留已关注作者的帖子。
func (f *Feed) VisiblePosts(tab string, following map[string]bool) []post.FeedPost {
	f.mu.Lock()
	defer f.mu.Unlock()

	if tab != TabFollowing {
		out := make([]post.FeedPost, len(f.posts))
		copy(out, f.posts)
		return out
	}

	out := make([]post.FeedPost, 0)
	for _, p := range f.posts {
		if following[p.Author.ID] {
			out = append(out, p)
		}
	}
	return out
}

// ResolvePost 先在会话Feed中查找帖子，再回退到目录。
// interaction模块通过它解析互动目标。
func ResolvePost(sessionID, postID string) (interaction.PostInfo, bool) {
	f := ForSession(sessionID)
	if p, ok := f.Lookup(postID); ok {
		_, cataloged := post.GetPostByID(postID)
		return interaction.PostInfo{
			ID:        p.ID,
			Category:  p.Category,
			AuthorID:  p.Author.ID,
			IsAd:      p.IsAd,
			Cataloged: cataloged,
		}, true
	}
	if p, ok := post.GetPostByID(postID); ok {
		return interaction.PostInfo{
			ID:        p.ID,
			Category:  p.Category,
			AuthorID:  p.Author.ID,
			IsAd:      p.IsAd,
			Cataloged: true,
		}, true
	}
	return interaction.PostInfo{}, false
}

// RemovePostLater 在延迟后从会话Feed中移除一条帖子。
// 轮盘帖在奖励入账后用它退场，前端有时间播放庆祝动画。
func RemovePostLater(sessionID, postID string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		registryMutex.RLock()
		f, ok := registry[sessionID]
		registryMutex.RUnlock()
		if ok {
			f.Remove(postID)
		}
	})
}
