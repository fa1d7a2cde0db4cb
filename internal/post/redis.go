package post

import (
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/uolflash/flash-feed-backend/internal/platform/database"
)

// 定义与帖子相关的Redis键名
const (
	// StatsKey 是一个Redis Hash，存储所有目录帖子的实时互动计数
	StatsKey = "post_stats"
	// TrendingKey 是一个Redis Sorted Set，按互动热度实时排序帖子
	TrendingKey = "post_trending"
)

// Engagement 定义了在Redis post_stats Hash中存储的帖子动态数据
type Engagement struct {
	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`
}

// trendingScore 计算进入热门排行的综合分数
// 分享的权重最高，其次是评论
func trendingScore(e Engagement) float64 {
	return float64(e.Likes) + 2*float64(e.Comments) + 3*float64(e.Shares)
}

// WarmupCache 用SQLite目录中的种子计数重建Redis缓存。
// 应用启动和Redis重启恢复时都会调用。
func WarmupCache() error {
	var postsFromDB []Post
	if err := database.DB.Order("id asc").Find(&postsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载帖子种子计数: %w", err)
	}

	pipe := database.RDB.TxPipeline()
	ranking := make([]redis.Z, 0, len(postsFromDB))
	for _, p := range postsFromDB {
		e := Engagement{Likes: p.Likes, Comments: p.Comments, Shares: p.Shares}
		engagementJSON, _ := json.Marshal(e)
		pipe.HSet(database.Ctx, StatsKey, p.PostID, engagementJSON)
		ranking = append(ranking, redis.Z{Score: trendingScore(e), Member: p.PostID})
	}
	pipe.Del(database.Ctx, TrendingKey)
	pipe.ZAdd(database.Ctx, TrendingKey, ranking...)

	if _, err := pipe.Exec(database.Ctx); err != nil {
		return fmt.Errorf("无法预热帖子互动缓存: %w", err)
	}

	fmt.Printf("帖子互动缓存预热完成，共 %d 条帖子。\n", len(postsFromDB))
	return nil
}

// IncrementEngagement 为一条帖子原子地记录一次互动，并同步热门排行。
// kind 只接受 like/comment/share；生成帖没有目录行，调用方不应传入。
// Redis不可用时静默跳过——互动计数是非关键路径，不能阻断奖励发放。
func IncrementEngagement(postID string, kind string) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return
	}

	statsJSON, err := database.RDB.HGet(database.Ctx, StatsKey, postID).Result()
	if err != nil {
		// 不在缓存中的帖子（生成帖）不维护全局计数
		return
	}

	var e Engagement
	_ = json.Unmarshal([]byte(statsJSON), &e)
	switch kind {
	case "like":
		e.Likes++
	case "comment":
		e.Comments++
	case "share":
		e.Shares++
	default:
		return
	}

	newJSON, _ := json.Marshal(e)
	pipe := database.RDB.TxPipeline()
	pipe.HSet(database.Ctx, StatsKey, postID, newJSON)
	pipe.ZAdd(database.Ctx, TrendingKey, redis.Z{Score: trendingScore(e), Member: postID})
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("警告: 更新帖子 %s 的互动计数失败: %v\n", postID, err)
	}
}

// GetEngagement 返回一条帖子的实时互动计数。
// Redis不可用或帖子不在缓存中时，回退到目录的种子计数。
func GetEngagement(postID string) Engagement {
	fallback := func() Engagement {
		if p, ok := GetPostByID(postID); ok {
			return Engagement{Likes: p.Likes, Comments: p.Comments, Shares: p.Shares}
		}
		return Engagement{}
	}

	if database.RDB == nil || !database.IsRedisHealthy() {
		return fallback()
	}

	statsJSON, err := database.RDB.HGet(database.Ctx, StatsKey, postID).Result()
	if err != nil {
		return fallback()
	}

	var e Engagement
	if err := json.Unmarshal([]byte(statsJSON), &e); err != nil {
		return fallback()
	}
	return e
}

// GetTrendingIDs 返回热门排行前limit名的帖子ID，按分数从高到低。
func GetTrendingIDs(limit int64) ([]string, error) {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return nil, fmt.Errorf("服务暂时不可用，请稍后重试")
	}
	return database.RDB.ZRevRange(database.Ctx, TrendingKey, 0, limit-1).Result()
}
