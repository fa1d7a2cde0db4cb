package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/generator"
	"github.com/uolflash/flash-feed-backend/internal/session"
)

func setupFeedRouter(t *testing.T, sessionID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(session.SessionIDKey, sessionID)
	})
	router.GET("/feed", GetFeed)
	router.POST("/feed/scroll", ScrollSettled)
	return router
}

func TestGetFeedForYouTab(t *testing.T) {
	sessionID := setupFeedTest(t, &fakeGenerator{err: generator.ErrUnavailable})
	router := setupFeedRouter(t, sessionID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("期望200, 实际 %d", rec.Code)
	}

	var resp FeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Posts) == 0 {
		t.Error("为你推荐页不应为空")
	}
	if resp.EmptyState != "" {
		t.Error("有内容时不应有空状态提示")
	}
}

func TestGetFeedFollowingEmptyState(t *testing.T) {
	sessionID := setupFeedTest(t, &fakeGenerator{err: generator.ErrUnavailable})
	router := setupFeedRouter(t, sessionID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed?tab=following", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("期望200, 实际 %d", rec.Code)
	}

	var resp FeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Posts) != 0 {
		t.Error("没有关注时关注页应为空")
	}
	if resp.EmptyState == "" {
		t.Error("空的关注页应携带提示文案")
	}
}

func TestGetFeedRejectsUnknownTab(t *testing.T) {
	sessionID := setupFeedTest(t, &fakeGenerator{err: generator.ErrUnavailable})
	router := setupFeedRouter(t, sessionID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feed?tab=trending", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("未知标签页应返回400, 实际 %d", rec.Code)
	}
}

func TestScrollEndpointExtendsFeed(t *testing.T) {
	sessionID := setupFeedTest(t, &fakeGenerator{err: generator.ErrUnavailable})
	router := setupFeedRouter(t, sessionID)

	before := len(ForSession(sessionID).Posts())
	body := strings.NewReader(`{"index":` + strconv.Itoa(before-1) + `,"tab":"foryou"}`)
	req := httptest.NewRequest(http.MethodPost, "/feed/scroll", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("期望200, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp FeedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Posts) != before+1 {
		t.Errorf("滚动后序列应扩展到 %d, 实际 %d", before+1, len(resp.Posts))
	}
	if resp.ActiveIndex != before-1 {
		t.Errorf("浏览位置应为 %d, 实际 %d", before-1, resp.ActiveIndex)
	}

	// 负数位置被拒绝
	req = httptest.NewRequest(http.MethodPost, "/feed/scroll", strings.NewReader(`{"index":-1}`))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("负数位置应返回400, 实际 %d", rec.Code)
	}
}
