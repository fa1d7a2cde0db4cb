package store

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uolflash/flash-feed-backend/internal/interaction"
	"github.com/uolflash/flash-feed-backend/internal/post"
	"github.com/uolflash/flash-feed-backend/internal/session"
	"github.com/uolflash/flash-feed-backend/internal/wallet"
)

func setupStoreTest(t *testing.T, sessionID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	post.PrimeRepositoryForTest()
	PrimeRepositoryForTest()

	oldDelay := processingDelay
	processingDelay = time.Millisecond
	t.Cleanup(func() {
		processingDelay = oldDelay
		wallet.RemoveSession(sessionID)
		interaction.RemoveSession(sessionID)
	})

	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(session.SessionIDKey, sessionID)
	})
	router.GET("/store", GetStore)
	router.POST("/store/redeem", Redeem)
	return router
}

func doRedeem(router *gin.Engine, rewardID string) *httptest.ResponseRecorder {
	body := strings.NewReader(`{"rewardId":"` + rewardID + `"}`)
	req := httptest.NewRequest(http.MethodPost, "/store/redeem", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestGetStoreMarksAffordability(t *testing.T) {
	sessionID := "store-test-affordable"
	router := setupStoreTest(t, sessionID)

	req := httptest.NewRequest(http.MethodGet, "/store", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("期望200, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp StoreResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if len(resp.Rewards) != 5 {
		t.Fatalf("奖励目录应有5项, 实际 %d", len(resp.Rewards))
	}
	if len(resp.Sponsors) == 0 {
		t.Error("赞助商品不应为空")
	}

	// 初始余额120买不起任何付费奖励
	for _, r := range resp.Rewards {
		if r.Cost > 120 && r.Affordable {
			t.Errorf("奖励 %s 不应标记为可负担", r.RewardID)
		}
		if r.MinLevel > 1 && r.LevelOK {
			t.Errorf("奖励 %s 不应标记为等级达标", r.RewardID)
		}
	}
}

func TestRedeemInsufficientCoins(t *testing.T) {
	sessionID := "store-test-poor"
	router := setupStoreTest(t, sessionID)

	rec := doRedeem(router, "r1")
	if rec.Code != http.StatusPaymentRequired {
		t.Errorf("余额120兑换500应返回402, 实际 %d", rec.Code)
	}
	if wallet.ForSession(sessionID).Snapshot().Coins != 120 {
		t.Error("失败的兑换不应扣币")
	}
}

func TestRedeemLevelTooLow(t *testing.T) {
	sessionID := "store-test-lowlevel"
	router := setupStoreTest(t, sessionID)
	wallet.ForSession(sessionID).AddCoins(2880) // 余额3000, 等级4

	rec := doRedeem(router, "r5") // 5000, L2
	if rec.Code != http.StatusPaymentRequired {
		t.Errorf("余额不足应优先返回402, 实际 %d", rec.Code)
	}

	sessionID2 := "store-test-lowlevel2"
	router2 := setupStoreTest(t, sessionID2)
	wallet.ForSession(sessionID2).AddCoins(780) // 余额900, 等级1

	rec = doRedeem(router2, "r4") // 2500, L2
	if rec.Code != http.StatusForbidden {
		t.Errorf("等级不足应返回403, 实际 %d", rec.Code)
	}
}

func TestRedeemSuccessIssuesCoupon(t *testing.T) {
	sessionID := "store-test-rich"
	router := setupStoreTest(t, sessionID)
	wallet.ForSession(sessionID).AddCoins(2480) // 余额2600, 等级3

	rec := doRedeem(router, "r1")
	if rec.Code != http.StatusOK {
		t.Fatalf("兑换应成功, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp RedeemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if !strings.HasPrefix(resp.Coupon, "FLASH-") || len(resp.Coupon) != len("FLASH-")+6 {
		t.Errorf("券码格式错误: %q", resp.Coupon)
	}
	if resp.QR != resp.Coupon {
		t.Error("QR载荷应为券码本身")
	}
	if resp.Stats.Coins != 2100 {
		t.Errorf("兑换后余额应为2100, 实际 %d", resp.Stats.Coins)
	}
	if resp.Stats.Level != 3 {
		t.Errorf("兑换后等级应为3, 实际 %d", resp.Stats.Level)
	}
}

func TestRedeemUnknownReward(t *testing.T) {
	sessionID := "store-test-unknown"
	router := setupStoreTest(t, sessionID)

	rec := doRedeem(router, "r999")
	if rec.Code != http.StatusNotFound {
		t.Errorf("未知奖励应返回404, 实际 %d", rec.Code)
	}
}

func TestRedeemBoostActivatesWithoutDeduction(t *testing.T) {
	sessionID := "store-test-boost"
	router := setupStoreTest(t, sessionID)

	rec := doRedeem(router, BoostRewardID)
	if rec.Code != http.StatusOK {
		t.Fatalf("Boost兑换应成功, 实际 %d: %s", rec.Code, rec.Body.String())
	}

	var resp RedeemResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Coupon != "" {
		t.Error("Boost不应签发券码")
	}
	if !resp.Stats.BoostActive {
		t.Error("Boost兑换后加成应激活")
	}
	if resp.Stats.Coins != 120 {
		t.Errorf("Boost不应扣币, 余额实际 %d", resp.Stats.Coins)
	}

	// 加成生效后奖励翻倍
	if granted := wallet.ForSession(sessionID).AddCoins(10); granted != 20 {
		t.Errorf("加成下应发放20, 实际 %d", granted)
	}
}

func TestGenerateCouponCodeShape(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := generateCouponCode()
		if err != nil {
			t.Fatalf("生成券码失败: %v", err)
		}
		if !strings.HasPrefix(code, "FLASH-") {
			t.Fatalf("券码前缀错误: %q", code)
		}
		for _, ch := range code[len("FLASH-"):] {
			if !strings.ContainsRune(couponCharset, ch) {
				t.Fatalf("券码包含非法字符: %q", code)
			}
		}
		seen[code] = true
	}
	if len(seen) < 2 {
		t.Error("券码应当是随机的")
	}
}
