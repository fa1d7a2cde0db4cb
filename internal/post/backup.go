package post

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/uolflash/flash-feed-backend/internal/platform/database"
	"gorm.io/gorm"
)

// CreateEngagementSnapshotInDB 将Redis中的实时互动计数写回SQLite目录。
// 在优雅停机的最终步骤调用，让下次启动的缓存预热从最新计数开始。
func CreateEngagementSnapshotInDB(ctx context.Context) error {
	if database.RDB == nil {
		return fmt.Errorf("redis客户端未初始化")
	}

	allStats, err := database.RDB.HGetAll(ctx, StatsKey).Result()
	if err != nil {
		return fmt.Errorf("无法从Redis读取互动计数: %w", err)
	}
	if len(allStats) == 0 {
		return nil
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		for postID, statsJSON := range allStats {
			var e Engagement
			if err := json.Unmarshal([]byte(statsJSON), &e); err != nil {
				fmt.Printf("警告: 帖子 %s 的互动计数无法解析，已跳过: %v\n", postID, err)
				continue
			}
			err := tx.Model(&Post{}).Where("post_id = ?", postID).
				Updates(map[string]interface{}{"likes": e.Likes, "comments": e.Comments, "shares": e.Shares}).Error
			if err != nil {
				return fmt.Errorf("无法写回帖子 %s 的互动计数: %w", postID, err)
			}
		}
		return nil
	})
}
