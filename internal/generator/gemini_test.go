package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/uolflash/flash-feed-backend/internal/platform/config"
	"github.com/uolflash/flash-feed-backend/internal/post"
)

// newGeminiStub 启动一个返回固定候选文本的Gemini替身服务
func newGeminiStub(t *testing.T, candidateText string, status int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, ":generateContent") {
			t.Errorf("意外的请求路径: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") == "" {
			t.Error("请求应携带API Key")
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		resp := map[string]any{
			"candidates": []map[string]any{
				{"content": map[string]any{"parts": []map[string]string{{"text": candidateText}}}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClient(baseURL string) Client {
	return NewClient(config.GeneratorConfig{
		APIKey:    "test-key",
		Model:     "gemini-2.5-flash",
		BaseURL:   baseURL,
		TimeoutMS: 2000,
	})
}

func TestGenerateFeedItemParsesCandidate(t *testing.T) {
	item := `{"type":"image","contentUrl":"https://picsum.photos/seed/x/1080/1920","title":"Novo rolê","description":"desc","author":{"id":"a1","name":"Ana","avatar":"av"},"likes":12,"comments":3,"shares":1,"isAd":false}`
	ts := newGeminiStub(t, item, http.StatusOK)
	defer ts.Close()

	generated, err := testClient(ts.URL).GenerateFeedItem(context.Background(), []string{"tech"}, false)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if generated.Type != post.TypeImage || generated.Title != "Novo rolê" {
		t.Errorf("生成内容解析错误: %+v", generated)
	}
	if generated.Author.Name != "Ana" {
		t.Errorf("作者解析错误: %+v", generated.Author)
	}
}

func TestGenerateFeedItemAdCarriesProduct(t *testing.T) {
	item := `{"type":"ad","title":"Oferta","description":"d","author":{"id":"a","name":"n","avatar":""},"isAd":true,"linkedProduct":{"id":"px","name":"Fone","price":"R$ 99","image":"img","affiliateLink":"link"}}`
	ts := newGeminiStub(t, item, http.StatusOK)
	defer ts.Close()

	generated, err := testClient(ts.URL).GenerateFeedItem(context.Background(), []string{"tech"}, true)
	if err != nil {
		t.Fatalf("生成失败: %v", err)
	}
	if !generated.IsAd {
		t.Error("广告请求的结果应标记为广告")
	}
	if generated.LinkedProduct == nil || generated.LinkedProduct.Name != "Fone" {
		t.Errorf("关联商品解析错误: %+v", generated.LinkedProduct)
	}
}

func TestGenerateFeedItemRejectsInvalidType(t *testing.T) {
	item := `{"type":"roulette","title":"hack","author":{"id":"a","name":"n","avatar":""}}`
	ts := newGeminiStub(t, item, http.StatusOK)
	defer ts.Close()

	if _, err := testClient(ts.URL).GenerateFeedItem(context.Background(), []string{"tech"}, false); !errors.Is(err, ErrUnavailable) {
		t.Errorf("非法类型应返回ErrUnavailable, 实际 %v", err)
	}
}

func TestGenerateFeedItemServerError(t *testing.T) {
	ts := newGeminiStub(t, "", http.StatusInternalServerError)
	defer ts.Close()

	if _, err := testClient(ts.URL).GenerateFeedItem(context.Background(), []string{"tech"}, false); !errors.Is(err, ErrUnavailable) {
		t.Errorf("远端失败应返回ErrUnavailable, 实际 %v", err)
	}
}

func TestNoAPIKeyIsUnavailable(t *testing.T) {
	c := NewClient(config.GeneratorConfig{})

	if _, err := c.GenerateFeedItem(context.Background(), []string{"tech"}, false); !errors.Is(err, ErrUnavailable) {
		t.Errorf("没有API Key时应返回ErrUnavailable, 实际 %v", err)
	}

	advice, err := c.ShoppingAdvice(context.Background(), "Fone")
	if err != nil || advice != defaultAdvice {
		t.Errorf("没有API Key时应返回默认文案, 实际 %q, err=%v", advice, err)
	}
}

func TestShoppingAdviceFallsBackOnFailure(t *testing.T) {
	ts := newGeminiStub(t, "", http.StatusInternalServerError)
	defer ts.Close()

	advice, err := testClient(ts.URL).ShoppingAdvice(context.Background(), "Fone")
	if err != nil || advice != fallbackAdvice {
		t.Errorf("生成失败时应返回兜底文案, 实际 %q, err=%v", advice, err)
	}
}

func TestShoppingAdviceReturnsPitch(t *testing.T) {
	ts := newGeminiStub(t, "Fone top demais! 🔥", http.StatusOK)
	defer ts.Close()

	advice, err := testClient(ts.URL).ShoppingAdvice(context.Background(), "Fone")
	if err != nil || advice != "Fone top demais! 🔥" {
		t.Errorf("文案解析错误: %q, err=%v", advice, err)
	}
}
