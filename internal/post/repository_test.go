package post

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestRepositoryLookups(t *testing.T) {
	PrimeRepositoryForTest()

	p, ok := GetPostByID("1")
	if !ok || p.Type != TypeVideo || p.Category != "travel" {
		t.Errorf("目录帖1解析错误: ok=%v %+v", ok, p)
	}
	if p.LinkedProduct == nil || p.LinkedProduct.ProductID != "p1" {
		t.Errorf("帖子1应关联商品p1: %+v", p.LinkedProduct)
	}

	ad, ok := GetPostByID("2")
	if !ok || !ad.IsAd {
		t.Error("帖子2应为广告帖")
	}

	if _, ok := GetPostByID("missing"); ok {
		t.Error("未知帖子不应命中")
	}
}

func TestInitialFeedKeepsCatalogOrder(t *testing.T) {
	PrimeRepositoryForTest()

	feed := InitialFeed()
	wantOrder := []string{"1", "2", "3", "4", "roulette_promo", "5"}
	if len(feed) != len(wantOrder) {
		t.Fatalf("初始Feed应有%d帖, 实际 %d", len(wantOrder), len(feed))
	}
	for i, id := range wantOrder {
		if feed[i].ID != id {
			t.Errorf("位置%d应为 %s, 实际 %s", i, id, feed[i].ID)
		}
	}
}

func TestSponsorProductsAreOrdered(t *testing.T) {
	PrimeRepositoryForTest()

	sponsors := SponsorProducts()
	if len(sponsors) != 5 {
		t.Fatalf("赞助商品应有5件, 实际 %d", len(sponsors))
	}
	if sponsors[0].ProductID != "sp1" || sponsors[4].ProductID != "sp5" {
		t.Errorf("赞助商品应保持目录顺序: %s..%s", sponsors[0].ProductID, sponsors[4].ProductID)
	}
	for _, p := range sponsors {
		if p.SponsorName == "" {
			t.Errorf("赞助商品 %s 缺少赞助商名", p.ProductID)
		}
	}
}

func TestNewFallbackPost(t *testing.T) {
	p1 := NewFallbackPost()
	if !strings.HasPrefix(p1.ID, "fallback-") {
		t.Errorf("兜底帖ID格式错误: %s", p1.ID)
	}
	if p1.Title != "Explore o Mundo" {
		t.Errorf("兜底帖标题错误: %s", p1.Title)
	}
	if p1.Author.ID != FallbackAuthorID {
		t.Errorf("兜底帖作者错误: %s", p1.Author.ID)
	}
}

func TestGetEngagementFallsBackToSeeds(t *testing.T) {
	PrimeRepositoryForTest()

	// 测试中没有Redis，应回退到目录的种子计数
	p, _ := GetPostByID("1")
	e := GetEngagement("1")
	if e.Likes != p.Likes || e.Comments != p.Comments || e.Shares != p.Shares {
		t.Errorf("种子计数回退错误: %+v vs %+v", e, p)
	}
}

func setupPostRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/posts/:id", GetPost)
	router.GET("/posts/:id/share-card", GetShareCard)
	return router
}

func TestGetPostHandler(t *testing.T) {
	PrimeRepositoryForTest()
	router := setupPostRouter()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/3", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("期望200, 实际 %d", rec.Code)
	}

	var resp PostResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Type != TypeCarousel || len(resp.Slides) == 0 {
		t.Errorf("轮播帖解析错误: %+v", resp.FeedPost)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("未知帖子应返回404, 实际 %d", rec.Code)
	}
}

func TestShareCardSelectsImage(t *testing.T) {
	PrimeRepositoryForTest()
	router := setupPostRouter()

	// 视频帖优先用封面图
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/1/share-card", nil))
	var card ShareCardResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}

	p, _ := GetPostByID("1")
	wantImage := p.ThumbnailURL
	if wantImage == "" && p.LinkedProduct != nil {
		wantImage = p.LinkedProduct.Image
	}
	if card.ImageURL != wantImage {
		t.Errorf("视频帖卡片图错误: %q", card.ImageURL)
	}
	if card.ImageURL == p.ContentURL && p.ContentURL != wantImage {
		t.Error("视频地址不应被当作卡片图")
	}
	if card.CanonicalURL != "https://uol.com.br/flash/post/1" {
		t.Errorf("规范链接错误: %s", card.CanonicalURL)
	}

	// 轮播帖用第一张图
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/posts/3/share-card", nil))
	if err := json.Unmarshal(rec.Body.Bytes(), &card); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	carousel, _ := GetPostByID("3")
	if card.ImageURL != carousel.Slides[0] {
		t.Errorf("轮播帖卡片图应为第一张, 实际 %q", card.ImageURL)
	}
}
