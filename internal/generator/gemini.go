package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/uolflash/flash-feed-backend/internal/post"
)

// geminiClient 通过Gemini的REST接口生成内容
type geminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

// --- Gemini REST 请求与响应模型 ---
type geminiRequest struct {
	Contents         []geminiContent   `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}
type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}
type geminiPart struct {
	Text string `json:"text"`
}
type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// generatedItem 是模型按约定输出的帖子JSON结构
type generatedItem struct {
	Type        string `json:"type"`
	ContentURL  string `json:"contentUrl"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	} `json:"author"`
	Likes         int  `json:"likes"`
	Comments      int  `json:"comments"`
	Shares        int  `json:"shares"`
	IsAd          bool `json:"isAd"`
	LinkedProduct *struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Price         string `json:"price"`
		Image         string `json:"image"`
		AffiliateLink string `json:"affiliateLink"`
	} `json:"linkedProduct"`
}

// generateText 发起一次generateContent调用并返回第一个候选文本
func (g *geminiClient) generateText(ctx context.Context, prompt string, wantJSON bool) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	}
	if wantJSON {
		reqBody.GenerationConfig = &generationConfig{ResponseMimeType: "application/json"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("序列化生成请求失败: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", strings.TrimSuffix(g.baseURL, "/"), g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("调用生成服务失败: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("生成服务返回 %d: %s", resp.StatusCode, string(body))
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("解析生成响应失败: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("生成响应中没有候选内容")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateFeedItem 实现Client接口
func (g *geminiClient) GenerateFeedItem(ctx context.Context, interests []string, isAd bool) (*post.FeedPost, error) {
	joined := strings.Join(interests, ", ")
	var prompt string
	if isAd {
		prompt = fmt.Sprintf(`Generate a JSON object for a Native Ad in a social feed for Gen Z users interested in %s.
The ad should be for a tech product or fashion item.
Type must be 'ad'.
Include a linkedProduct with id, name, price, image and affiliateLink.
The object must have: type, contentUrl, title, description, author{id,name,avatar}, likes, comments, shares, isAd, linkedProduct.`, joined)
	} else {
		prompt = fmt.Sprintf(`Generate a JSON object representing a social media post for a Gen Z audience interested in: %s.
The post should be related to technology, pop culture, or shopping.
Type can be 'image' or 'news'.
Images should use unsplash or picsum placeholders.
The object must have: type, contentUrl, title, description, author{id,name,avatar}, likes, comments, shares, isAd.`, joined)
	}

	text, err := g.generateText(ctx, prompt, true)
	if err != nil {
		fmt.Printf("生成Feed内容失败: %v\n", err)
		return nil, ErrUnavailable
	}

	var item generatedItem
	if err := json.Unmarshal([]byte(text), &item); err != nil {
		fmt.Printf("生成的内容不是合法JSON: %v\n", err)
		return nil, ErrUnavailable
	}

	// 模型输出必须落在允许的帖子类型内
	switch post.Type(item.Type) {
	case post.TypeImage, post.TypeNews, post.TypeAd:
	default:
		fmt.Printf("生成的内容类型无效: %q\n", item.Type)
		return nil, ErrUnavailable
	}
	if item.Title == "" {
		return nil, ErrUnavailable
	}

	p := &post.FeedPost{
		Type:        post.Type(item.Type),
		ContentURL:  item.ContentURL,
		Title:       item.Title,
		Description: item.Description,
		Author: post.Author{
			ID:     item.Author.ID,
			Name:   item.Author.Name,
			Avatar: item.Author.Avatar,
		},
		Likes:    item.Likes,
		Comments: item.Comments,
		Shares:   item.Shares,
		IsAd:     isAd || item.IsAd,
	}
	if item.LinkedProduct != nil {
		p.LinkedProduct = &post.Product{
			ProductID:     item.LinkedProduct.ID,
			Name:          item.LinkedProduct.Name,
			Price:         item.LinkedProduct.Price,
			Image:         item.LinkedProduct.Image,
			AffiliateLink: item.LinkedProduct.AffiliateLink,
		}
	}
	return p, nil
}

// ShoppingAdvice 实现Client接口
func (g *geminiClient) ShoppingAdvice(ctx context.Context, productName string) (string, error) {
	prompt := fmt.Sprintf("Write a short, punchy, 1-sentence sales pitch for Gen Z about this product: %s. Use emojis. Keep it under 10 words.", productName)
	text, err := g.generateText(ctx, prompt, false)
	if err != nil || strings.TrimSpace(text) == "" {
		return fallbackAdvice, nil
	}
	return strings.TrimSpace(text), nil
}
