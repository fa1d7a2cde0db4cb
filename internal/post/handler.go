package post

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// shareBaseURL 是分享卡片二维码编码的规范链接前缀
const shareBaseURL = "https://uol.com.br/flash/post/"

// PostResponse 是单帖查询的API响应结构
type PostResponse struct {
	FeedPost
	Engagement Engagement `json:"engagement"`
}

// ShareCardResponse 是分享卡片的API响应结构
// 卡片渲染和二维码绘制由客户端协作方完成，这里只下发数据
type ShareCardResponse struct {
	PostID       string `json:"postId"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	AuthorName   string `json:"authorName"`
	AuthorAvatar string `json:"authorAvatar"`
	CanonicalURL string `json:"canonicalUrl"`
}

// GetPost 根据ID获取单条帖子的目录信息和实时互动计数
func GetPost(c *gin.Context) {
	postID := c.Param("id")
	p, ok := GetPostByID(postID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("找不到ID为 %s 的帖子", postID)})
		return
	}

	c.JSON(http.StatusOK, PostResponse{FeedPost: p, Engagement: GetEngagement(postID)})
}

// GetTrending 获取热门帖子排行
func GetTrending(c *gin.Context) {
	ids, err := GetTrendingIDs(10)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "服务暂时不可用，请稍后重试"})
		return
	}

	responses := make([]PostResponse, 0, len(ids))
	for _, id := range ids {
		if p, ok := GetPostByID(id); ok {
			responses = append(responses, PostResponse{FeedPost: p, Engagement: GetEngagement(id)})
		}
	}
	c.JSON(http.StatusOK, responses)
}

// GetShareCard 下发一条帖子的分享卡片数据。
// 视频帖不能直接把视频地址当作卡片图，优先用封面图，其次用带货商品图。
func GetShareCard(c *gin.Context) {
	postID := c.Param("id")
	p, ok := GetPostByID(postID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("找不到ID为 %s 的帖子", postID)})
		return
	}

	imageURL := p.ContentURL
	if p.Type == TypeVideo {
		imageURL = p.ThumbnailURL
		if imageURL == "" && p.LinkedProduct != nil {
			imageURL = p.LinkedProduct.Image
		}
	}
	if p.Type == TypeCarousel && len(p.Slides) > 0 {
		imageURL = p.Slides[0]
	}

	c.JSON(http.StatusOK, ShareCardResponse{
		PostID:       p.ID,
		Title:        p.Title,
		Description:  p.Description,
		ImageURL:     imageURL,
		AuthorName:   p.Author.Name,
		AuthorAvatar: p.Author.Avatar,
		CanonicalURL: shareBaseURL + p.ID,
	})
}
