package post

import (
	"encoding/json"
	"fmt"
	"time"
)

// uolLogo 是目录内置作者的统一头像
const uolLogo = "https://upload.wikimedia.org/wikipedia/commons/thumb/6/6b/UOL_logo.svg/200px-UOL_logo.svg.png"

// FallbackAuthorID 是兜底内容的作者ID
const FallbackAuthorID = "uol-travel"

// mustSlides 将图片列表编码为存入目录的JSON字符串
func mustSlides(urls ...string) string {
	b, _ := json.Marshal(urls)
	return string(b)
}

// seedPosts 返回随应用内置的初始帖子目录。
// 顺序即初始Feed顺序；第二条（下标1）是广告位。
func seedPosts() []Post {
	return []Post{
		{
			PostID:       "1",
			Type:         TypeVideo,
			Category:     "travel",
			ContentURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
			ThumbnailURL: "https://images.unsplash.com/photo-1476514525535-07fb3b4ae5f1?auto=format&fit=crop&w=1000&q=80",
			Title:        "Fugindo da Rotina",
			Description:  "Descubra paisagens incríveis para suas próximas férias. A natureza espera por você!",
			AuthorID:     "a1", AuthorName: "Nossa Viagem", AuthorAvatar: uolLogo, AuthorFollowers: 54000,
			Likes: 1240, Comments: 342, Shares: 89,
			LinkedProductID: "p1",
		},
		{
			PostID:       "2",
			Type:         TypeVideo,
			Category:     "tech",
			ContentURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
			ThumbnailURL: "https://images.unsplash.com/photo-1533174072545-e8d4aa97edf9?auto=format&fit=crop&w=1000&q=80",
			Title:        "Liberdade na Estrada",
			Description:  "Registre cada momento da sua aventura com a melhor qualidade de imagem.",
			AuthorID:     "a2", AuthorName: "Tilt UOL", AuthorAvatar: uolLogo, AuthorFollowers: 120000,
			Likes: 3120, Comments: 450, Shares: 120,
			IsAd:            true, // 固定广告位
			LinkedProductID: "p_cam",
		},
		{
			PostID:   "3",
			Type:     TypeCarousel,
			Category: "tech",
			SlidesJSON: mustSlides(
				"https://images.unsplash.com/photo-1498050108023-c5249f4df085?auto=format&fit=crop&w=1000&q=80",
				"https://images.unsplash.com/photo-1504270997636-07ddf9488335?auto=format&fit=crop&w=1000&q=80",
			),
			Title:       "Devs: Setup dos Sonhos",
			Description: "Inspiração para quem quer codar com estilo e conforto.",
			AuthorID:    "a3", AuthorName: "UOL", AuthorAvatar: uolLogo,
			Likes: 3400, Comments: 890, Shares: 500,
			LinkedProductID: "p2",
		},
		{
			PostID:       "4",
			Type:         TypeVideo,
			Category:     "sports",
			ContentURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/WeAreGoingOnBullrun.mp4",
			ThumbnailURL: "https://images.unsplash.com/photo-1492144534655-ae79c964c9d7?auto=format&fit=crop&w=1000&q=80",
			Title:        "Estilo de Vida Radical",
			Description:  "Viva intensamente. O equipamento certo faz toda a diferença.",
			AuthorID:     "a4", AuthorName: "UOL Esporte", AuthorAvatar: uolLogo,
			Likes: 560, Comments: 80, Shares: 20,
			LinkedProductID: "p_oculos",
		},
		{
			PostID:      "roulette_promo",
			Type:        TypeRoulette,
			Category:    "entertainment",
			Title:       "Gire e Ganhe",
			Description: "Tente a sorte e ganhe Flash Coins!",
			AuthorID:    "uol-flash", AuthorName: "UOL Flash", AuthorAvatar: uolLogo,
		},
		{
			PostID:       "5",
			Type:         TypeVideo,
			Category:     "food",
			ContentURL:   "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerMeltdowns.mp4",
			ThumbnailURL: "https://images.unsplash.com/photo-1504674900247-0877df9cc836?auto=format&fit=crop&w=1000&q=80",
			Title:        "Cozinha Prática",
			Description:  "Prepare refeições deliciosas sem estresse e bagunça.",
			AuthorID:     "a5", AuthorName: "VivaBem", AuthorAvatar: uolLogo,
			Likes: 2100, Comments: 150, Shares: 300,
			LinkedProductID: "p_airfryer",
		},
	}
}

// seedProducts 返回内置的商品目录：帖子挂载的带货商品 + 商店的赞助商商品。
func seedProducts() []Product {
	return []Product{
		// 帖子挂载商品
		{ProductID: "p1", Name: "Pacote Ecoturismo", Price: "R$ 2.499", Image: "https://images.unsplash.com/photo-1501785888041-af3ef285b470?auto=format&fit=crop&w=200&q=80", AffiliateLink: "#", Category: "travel"},
		{ProductID: "p_cam", Name: "Action Cam 4K", Price: "R$ 1.899,90", Image: "https://images.unsplash.com/photo-1526660690293-bcd32dc3b123?auto=format&fit=crop&w=200&q=80", AffiliateLink: "#", Category: "tech"},
		{ProductID: "p2", Name: "Teclado Mecânico RGB", Price: "R$ 499,90", Image: "https://images.unsplash.com/photo-1587829741301-dc798b91a603?auto=format&fit=crop&w=200&q=80", AffiliateLink: "#", Category: "tech"},
		{ProductID: "p_oculos", Name: "Óculos Esportivo UV", Price: "R$ 450,00", Image: "https://images.unsplash.com/photo-1572635196237-14b3f281503f?auto=format&fit=crop&w=200&q=80", AffiliateLink: "#", Category: "sports"},
		{ProductID: "p_airfryer", Name: "AirFryer Digital", Price: "R$ 349,90", Image: "https://images.unsplash.com/photo-1585834896791-3850239b1285?auto=format&fit=crop&w=200&q=80", AffiliateLink: "#", Category: "food"},

		// 商店赞助商商品
		{ProductID: "sp1", Name: "Smartphone Galaxy S24", Price: "R$ 4.599", Image: "https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?auto=format&fit=crop&w=300&q=80", AffiliateLink: "#", Category: "tech", SponsorName: "Samsung"},
		{ProductID: "sp2", Name: "Tênis Nike Air Max", Price: "R$ 699,90", Image: "https://images.unsplash.com/photo-1542291026-7eec264c27ff?auto=format&fit=crop&w=300&q=80", AffiliateLink: "#", Category: "fashion", SponsorName: "Netshoes"},
		{ProductID: "sp3", Name: "Pacote Cancun 7 Dias", Price: "R$ 3.200", Image: "https://images.unsplash.com/photo-1544551763-46a8723ba3f9?auto=format&fit=crop&w=300&q=80", AffiliateLink: "#", Category: "travel", SponsorName: "CVC"},
		{ProductID: "sp4", Name: "Smartwatch Series 8", Price: "R$ 2.100", Image: "https://images.unsplash.com/photo-1579586337278-3befd40fd17a?auto=format&fit=crop&w=300&q=80", AffiliateLink: "#", Category: "tech", SponsorName: "Amazon"},
		{ProductID: "sp5", Name: "Whey Protein Gold", Price: "R$ 189,90", Image: "https://images.unsplash.com/photo-1593095948071-474c5cc2989d?auto=format&fit=crop&w=300&q=80", AffiliateLink: "#", Category: "sports", SponsorName: "Growth"},
	}
}

// NewFallbackPost 构造Feed的固定兜底帖子。
// 每次生成内容失败时追加一条，ID带时间戳保证会话内唯一。
func NewFallbackPost() FeedPost {
	return FeedPost{
		ID:          fmt.Sprintf("fallback-%d", time.Now().UnixMilli()),
		Type:        TypeImage,
		Category:    "general",
		ContentURL:  "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4?auto=format&fit=crop&w=1000&q=80",
		Title:       "Explore o Mundo",
		Description: "Descubra lugares incríveis com o UOL Flash.",
		Author:      Author{ID: FallbackAuthorID, Name: "Nossa Viagem", Avatar: uolLogo},
		Likes:       42,
		Comments:    5,
		Shares:      1,
	}
}
