package startup

import (
	"context"
	"fmt"

	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/store"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := post.PrimeCachedDB(); err != nil {
		return err
	}
	if err := store.PrimeDB(); err != nil {
		return err
	}
	if err := post.WarmupCache(); err != nil {
		return err
	}

	fmt.Println("应用初始化完成！")
	return nil
}

// RebuildCache 是一个专门用于在运行时热重建Redis缓存的函数
func RebuildCache() error {
	fmt.Println("开始缓存热重建...")

	if err := post.WarmupCache(); err != nil {
		return err
	}

	// 触发一次新的快照
	fmt.Println("缓存热重建完成，正在触发一次新的互动计数快照...")
	if err := post.CreateEngagementSnapshotInDB(context.Background()); err != nil {
		fmt.Printf("警告: 缓存热重建后的快照创建失败: %v\n", err)
	}

	return nil
}
