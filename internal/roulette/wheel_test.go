package roulette

import (
	"math"
	"math/rand"
	"testing"
)

func TestSpinIndexInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		idx := Spin(rng)
		if idx < 0 || idx >= len(Segments) {
			t.Fatalf("扇区下标越界: %d", idx)
		}
	}
}

func TestRotationLandsInsideSegment(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for idx := range Segments {
		for i := 0; i < 50; i++ {
			rotation := Rotation(idx, rng)

			// 剥离完整圈数，得到指针相对轮盘的最终角度
			final := math.Mod(rotation, 360)
			if final < 0 {
				final += 360
			}
			// 指针指向的扇区下标
			pointed := int(math.Mod(360-final, 360) / segmentAngle)

			if pointed != idx {
				t.Fatalf("旋转 %.2f 停在扇区 %d, 期望 %d", rotation, pointed, idx)
			}
		}
	}
}

func TestRotationIncludesExtraSpins(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	rotation := Rotation(0, rng)
	if rotation < 4*360 {
		t.Errorf("旋转角度应包含完整圈数, 实际 %.2f", rotation)
	}
}
