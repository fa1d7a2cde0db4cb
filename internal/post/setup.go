package post

import (
	"fmt"

	"github.com/uolflash/flash-feed-backend/internal/platform/database"
)

// PrimeDB 负责初始化post模块的数据库部分：迁移表结构并写入内置目录。
// 目录行已存在时保持不动，这样上次停机快照的计数不会被种子值覆盖。
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Post{}, &Product{}); err != nil {
		return fmt.Errorf("无法迁移post表: %w", err)
	}
	fmt.Println("Post数据库表迁移成功。")

	for _, p := range seedPosts() {
		var count int64
		database.DB.Model(&Post{}).Where("post_id = ?", p.PostID).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fmt.Errorf("无法写入内置帖子 %s: %w", p.PostID, err)
		}
	}

	for _, p := range seedProducts() {
		var count int64
		database.DB.Model(&Product{}).Where("product_id = ?", p.ProductID).Count(&count)
		if count > 0 {
			continue
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fmt.Errorf("无法写入内置商品 %s: %w", p.ProductID, err)
		}
	}

	return nil
}

// PrimeCachedDB 在数据库就绪后加载内存仓库。
func PrimeCachedDB() error {
	if err := PrimeDB(); err != nil {
		return err
	}
	return InitializeRepository()
}
