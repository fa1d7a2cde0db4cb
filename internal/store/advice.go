package store

import (
	"context"
	"sync"
	"time"

	"github.com/uolflash/flash-feed-backend/internal/generator"
)

// adviceTimeout 是单条导购文案生成的超时
const adviceTimeout = 5 * time.Second

var (
	adviceClient generator.Client

	pitchMutex sync.Mutex
	pitchCache = make(map[string]string)
)

// Configure 注入导购文案的生成客户端
func Configure(c generator.Client) {
	adviceClient = c
}

// pitchFor 返回一件商品的导购文案。
// 文案与会话无关，首次生成后全局缓存，之后直接复用。
func pitchFor(productID, productName string) string {
	pitchMutex.Lock()
	if pitch, ok := pitchCache[productID]; ok {
		pitchMutex.Unlock()
		return pitch
	}
	pitchMutex.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), adviceTimeout)
	defer cancel()

	pitch, err := adviceClient.ShoppingAdvice(ctx, productName)
	if err != nil || pitch == "" {
		return ""
	}

	pitchMutex.Lock()
	pitchCache[productID] = pitch
	pitchMutex.Unlock()
	return pitch
}
