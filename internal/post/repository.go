package post

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/uolflash/flash-feed-backend/internal/platform/database"
)

// FeedPost 是帖子在Feed序列和API响应中的完整展示结构。
// 目录帖和生成帖统一使用这个结构，生成帖没有目录行。
type FeedPost struct {
	ID            string   `json:"id"`
	Type          Type     `json:"type"`
	Category      string   `json:"category"`
	ContentURL    string   `json:"contentUrl"`
	ThumbnailURL  string   `json:"thumbnailUrl,omitempty"`
	Slides        []string `json:"slides,omitempty"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Author        Author   `json:"author"`
	Likes         int      `json:"likes"`
	Comments      int      `json:"comments"`
	Shares        int      `json:"shares"`
	IsAd          bool     `json:"isAd,omitempty"`
	LinkedProduct *Product `json:"linkedProduct,omitempty"`
}

// repository 是post模块的中央数据仓库
// 目录数据在启动时从SQLite载入内存，之后只读
type repository struct {
	mu           sync.RWMutex
	idToPost     map[string]FeedPost
	feedOrder    []string // 初始Feed的帖子顺序
	idToProduct  map[string]Product
	sponsorOrder []string // 赞助商商品的目录顺序
}

// globalRepository 是我们仓库的私有单例实例
var globalRepository *repository

// InitializeRepository 从SQLite加载帖子和商品目录，初始化内存仓库。
// 这个函数应该在应用启动时且仅调用一次。
func InitializeRepository() error {
	var postsFromDB []Post
	if err := database.DB.Order("id asc").Find(&postsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载帖子目录: %w", err)
	}
	if len(postsFromDB) == 0 {
		return fmt.Errorf("帖子目录为空，无法初始化仓库")
	}

	var productsFromDB []Product
	if err := database.DB.Order("id asc").Find(&productsFromDB).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载商品目录: %w", err)
	}

	primeRepository(postsFromDB, productsFromDB)

	fmt.Printf("帖子仓库 (Repository) 初始化成功，加载了 %d 条帖子和 %d 件商品。\n", len(postsFromDB), len(productsFromDB))
	return nil
}

// primeRepository 用给定的目录数据填充内存仓库。
// 测试可以直接用种子数据调用它，绕过SQLite。
func primeRepository(posts []Post, products []Product) {
	repo := &repository{
		idToPost:    make(map[string]FeedPost, len(posts)),
		feedOrder:   make([]string, 0, len(posts)),
		idToProduct: make(map[string]Product, len(products)),
	}

	for _, p := range products {
		repo.idToProduct[p.ProductID] = p
		if p.SponsorName != "" {
			repo.sponsorOrder = append(repo.sponsorOrder, p.ProductID)
		}
	}

	for _, p := range posts {
		fp := FeedPost{
			ID:           p.PostID,
			Type:         p.Type,
			Category:     p.Category,
			ContentURL:   p.ContentURL,
			ThumbnailURL: p.ThumbnailURL,
			Title:        p.Title,
			Description:  p.Description,
			Author: Author{
				ID:        p.AuthorID,
				Name:      p.AuthorName,
				Avatar:    p.AuthorAvatar,
				Followers: p.AuthorFollowers,
			},
			Likes:    p.Likes,
			Comments: p.Comments,
			Shares:   p.Shares,
			IsAd:     p.IsAd,
		}
		if p.SlidesJSON != "" {
			_ = json.Unmarshal([]byte(p.SlidesJSON), &fp.Slides)
		}
		if p.LinkedProductID != "" {
			if product, ok := repo.idToProduct[p.LinkedProductID]; ok {
				fp.LinkedProduct = &product
			}
		}
		repo.idToPost[p.PostID] = fp
		repo.feedOrder = append(repo.feedOrder, p.PostID)
	}

	globalRepository = repo
}

// PrimeRepositoryForTest 用内置种子数据初始化仓库，供各模块的测试使用。
func PrimeRepositoryForTest() {
	primeRepository(seedPosts(), seedProducts())
}

// --- Public Methods for Data Access ---
// 这些方法是线程安全的，因为它们访问的是启动后只读的数据。

// GetPostByID 返回目录中的帖子，不存在时second返回false
func GetPostByID(id string) (FeedPost, bool) {
	if globalRepository == nil {
		return FeedPost{}, false
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	p, ok := globalRepository.idToPost[id]
	return p, ok
}

// GetProductByID 返回目录中的商品
func GetProductByID(id string) (Product, bool) {
	if globalRepository == nil {
		return Product{}, false
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	p, ok := globalRepository.idToProduct[id]
	return p, ok
}

// InitialFeed 返回初始Feed序列（目录顺序的帖子副本）
func InitialFeed() []FeedPost {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	feed := make([]FeedPost, 0, len(globalRepository.feedOrder))
	for _, id := range globalRepository.feedOrder {
		feed = append(feed, globalRepository.idToPost[id])
	}
	return feed
}

// SponsorProducts 返回商店展示的赞助商商品列表
func SponsorProducts() []Product {
	if globalRepository == nil {
		return nil
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	products := make([]Product, 0, len(globalRepository.sponsorOrder))
	for _, id := range globalRepository.sponsorOrder {
		products = append(products, globalRepository.idToProduct[id])
	}
	return products
}

// PostCount 返回目录中的帖子数量
func PostCount() int {
	if globalRepository == nil {
		return 0
	}
	globalRepository.mu.RLock()
	defer globalRepository.mu.RUnlock()
	return len(globalRepository.idToPost)
}
