package interaction

import (
	"reflect"
	"testing"
)

func TestLikeIsLatched(t *testing.T) {
	l := newLedger()

	if !l.Like("1") {
		t.Error("首次点赞应返回true")
	}
	if l.Like("1") {
		t.Error("重复点赞应返回false")
	}
	if !l.Like("2") {
		t.Error("不同帖子的点赞互不影响")
	}
}

func TestToggleSaveKeepsOrder(t *testing.T) {
	l := newLedger()

	l.ToggleSave("1")
	l.ToggleSave("2")
	l.ToggleSave("3")
	l.ToggleSave("2") // 取消收藏

	want := []string{"1", "3"}
	if got := l.SavedIDs(); !reflect.DeepEqual(got, want) {
		t.Errorf("收藏列表应为 %v, 实际 %v", want, got)
	}

	if !l.ToggleSave("2") {
		t.Error("重新收藏应返回true")
	}
}

func TestToggleFollow(t *testing.T) {
	l := newLedger()

	if !l.ToggleFollow("uol-tech") {
		t.Error("首次关注应返回true")
	}
	if l.ToggleFollow("uol-tech") {
		t.Error("再次切换应为取关")
	}
	if l.FollowingSet()["uol-tech"] {
		t.Error("取关后不应在关注集合中")
	}
}

func TestRecordShareIsMonotonic(t *testing.T) {
	l := newLedger()

	for want := 1; want <= 3; want++ {
		if got := l.RecordShare("1"); got != want {
			t.Errorf("第%d次分享计数应为%d, 实际 %d", want, want, got)
		}
	}
}

func TestViewAndSpinLatches(t *testing.T) {
	l := newLedger()

	if !l.MarkViewed("1") || l.MarkViewed("1") {
		t.Error("浏览分每帖只发一次")
	}
	if !l.MarkSpun("roulette_promo") || l.MarkSpun("roulette_promo") {
		t.Error("每个轮盘帖只能抽一次")
	}
}

func TestInterestSetTouch(t *testing.T) {
	s := newInterestSet()

	if !reflect.DeepEqual(s.List(), []string{"general"}) {
		t.Fatalf("初始兴趣应为 [general], 实际 %v", s.List())
	}

	s.Touch("tech")
	s.Touch("moda")
	want := []string{"moda", "tech", "general"}
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("新兴趣应插入头部, 期望 %v, 实际 %v", want, got)
	}

	// 已存在的兴趣不移动位置
	s.Touch("tech")
	if got := s.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("重复兴趣不应改变顺序, 期望 %v, 实际 %v", want, got)
	}

	if s.Top() != "moda" {
		t.Errorf("最新兴趣应为moda, 实际 %s", s.Top())
	}
}

func TestInterestSetCapacity(t *testing.T) {
	s := newInterestSet()
	for _, it := range []string{"a", "b", "c", "d", "e", "f"} {
		s.Touch(it)
	}

	got := s.List()
	if len(got) != maxInterests {
		t.Fatalf("兴趣列表容量应为%d, 实际 %d", maxInterests, len(got))
	}
	if got[0] != "f" {
		t.Errorf("头部应为最新兴趣f, 实际 %s", got[0])
	}
}

func TestInterestSetReplace(t *testing.T) {
	s := newInterestSet()

	s.Replace([]string{"games", "musica"})
	if !reflect.DeepEqual(s.List(), []string{"games", "musica"}) {
		t.Errorf("替换后兴趣应为 [games musica], 实际 %v", s.List())
	}

	// 空列表重置为初始兴趣
	s.Replace(nil)
	if !reflect.DeepEqual(s.List(), []string{"general"}) {
		t.Errorf("空替换应重置为 [general], 实际 %v", s.List())
	}
}

func TestSessionStateIsolation(t *testing.T) {
	LedgerForSession("isolation-a").Like("1")
	if LedgerForSession("isolation-b").HasLiked("1") {
		t.Error("会话间的账本应相互隔离")
	}

	RemoveSession("isolation-a")
	if LedgerForSession("isolation-a").HasLiked("1") {
		t.Error("回收后的会话应重新开始")
	}
	RemoveSession("isolation-a")
	RemoveSession("isolation-b")
}
