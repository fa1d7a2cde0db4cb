package post

import "gorm.io/gorm"

// Type 定义了帖子的内容类型
type Type string

const (
	// TypeVideo 表示竖屏视频帖
	TypeVideo Type = "video"
	// TypeImage 表示单图帖
	TypeImage Type = "image"
	// TypeCarousel 表示多图轮播帖
	TypeCarousel Type = "carousel"
	// TypeNews 表示生成的资讯帖
	TypeNews Type = "news"
	// TypeAd 表示原生广告帖
	TypeAd Type = "ad"
	// TypeRoulette 表示轮盘抽奖互动帖
	TypeRoulette Type = "roulette"
)

// Post 定义了数据库中帖子目录的数据结构
// 点赞/评论/分享字段是目录中的种子计数，实时计数在Redis中维护
type Post struct {
	// gorm.Model 包含 ID, CreatedAt, UpdatedAt, DeletedAt
	gorm.Model

	// PostID 是帖子的业务主键, 例如 "roulette_promo"
	PostID string `gorm:"uniqueIndex;not null" json:"id"`

	// Type 是帖子的内容类型
	Type Type `json:"type"`

	// Category 是帖子的兴趣分类, 例如 "travel"
	Category string `json:"category"`

	// ContentURL 是视频地址或主图地址
	ContentURL string `json:"contentUrl"`

	// ThumbnailURL 是视频封面图地址
	ThumbnailURL string `json:"thumbnailUrl"`

	// SlidesJSON 是轮播帖的图片列表（JSON编码的字符串数组）
	SlidesJSON string `json:"-"`

	// Title 是帖子的标题
	Title string `json:"title"`

	// Description 是帖子的描述文案
	Description string `json:"description"`

	// --- 作者信息，目录中内联存储 ---

	AuthorID        string `gorm:"index" json:"authorId"`
	AuthorName      string `json:"authorName"`
	AuthorAvatar    string `json:"authorAvatar"`
	AuthorFollowers int    `json:"authorFollowers"`

	// --- 互动种子计数 ---

	Likes    int `json:"likes"`
	Comments int `json:"comments"`
	Shares   int `json:"shares"`

	// IsAd 标记该帖是否为广告（广告帖的完整浏览奖励更高）
	IsAd bool `json:"isAd"`

	// LinkedProductID 是帖子挂载的带货商品ID，可以为空
	LinkedProductID string `json:"linkedProductId"`
}

// Product 定义了赞助商商品的数据结构
// 目录数据在启动时载入，之后不再变化
type Product struct {
	gorm.Model

	// ProductID 是商品的业务主键, 例如 "sp1"
	ProductID string `gorm:"uniqueIndex;not null" json:"id"`

	Name          string `json:"name"`
	Price         string `json:"price"`
	Image         string `json:"image"`
	AffiliateLink string `json:"affiliateLink"`
	Category      string `json:"category"`
	SponsorName   string `json:"sponsorName"`
}

// Author 是帖子作者的展示结构
type Author struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Avatar    string `json:"avatar"`
	Followers int    `json:"followers,omitempty"`
}
