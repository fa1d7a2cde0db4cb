package roulette

import "math/rand"

// Segments 是轮盘上按顺时针排列的奖励分值
var Segments = []int{10, 50, 20, 100, 30, 10, 80, 40}

// segmentAngle 是每个扇区占据的角度
const segmentAngle = 360.0 / 8

// extraSpins 是动画中的完整旋转圈数
const extraSpins = 5 * 360.0

// Spin 随机选择一个中奖扇区，返回其下标
func Spin(rng *rand.Rand) int {
	return rng.Intn(len(Segments))
}

// Rotation 计算让指定扇区停在顶部指针处的总旋转角度。
// 在对准扇区中心的基础上叠加±20%扇区宽度的抖动，让落点看起来自然。
func Rotation(index int, rng *rand.Rand) float64 {
	target := extraSpins + (360.0 - float64(index)*segmentAngle) - segmentAngle/2
	jitter := rng.Float64()*segmentAngle*0.4 - segmentAngle*0.2
	return target + jitter
}
