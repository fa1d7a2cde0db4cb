package generator

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/uolflash/flash-feed-backend/internal/platform/config"
	"github.com/uolflash/flash-feed-backend/internal/post"
)

// ErrUnavailable 表示生成服务当前不可用（未配置API Key或远端失败）。
// 调用方收到它之后应该走兜底路径，而不是把错误暴露给用户。
var ErrUnavailable = errors.New("内容生成服务不可用")

// defaultAdvice 是生成服务不可用时的导购文案
const defaultAdvice = "Produto incrível com condições especiais no Guia de Compras!"

// fallbackAdvice 是生成请求失败时的导购文案
const fallbackAdvice = "Confira essa oferta!"

// Client 是个性化内容生成服务的抽象。
// Feed用它扩展无限流，商店用它生成商品导购文案。
type Client interface {
	// GenerateFeedItem 根据会话兴趣生成一条新帖子。isAd为true时生成原生广告。
	// 返回的帖子没有ID和分类，由调用方补全。
	GenerateFeedItem(ctx context.Context, interests []string, isAd bool) (*post.FeedPost, error)
	// ShoppingAdvice 为一件商品生成一句导购文案
	ShoppingAdvice(ctx context.Context, productName string) (string, error)
}

// NewClient 根据配置创建生成服务客户端。
// 未配置API Key时返回一个永远不可用的客户端，调用方无需区分。
func NewClient(cfg config.GeneratorConfig) Client {
	if cfg.APIKey == "" {
		return unavailableClient{}
	}
	timeout := time.Duration(cfg.TimeoutMS) * time.Millisecond
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &geminiClient{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// unavailableClient 在没有API Key时顶替真实客户端
type unavailableClient struct{}

func (unavailableClient) GenerateFeedItem(ctx context.Context, interests []string, isAd bool) (*post.FeedPost, error) {
	return nil, ErrUnavailable
}

func (unavailableClient) ShoppingAdvice(ctx context.Context, productName string) (string, error) {
	return defaultAdvice, nil
}
