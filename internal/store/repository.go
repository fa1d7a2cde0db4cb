package store

import (
	"fmt"
	"sync"

	"github.com/uolflash/flash-feed-backend/internal/platform/database"
)

// repository 是store模块的奖励目录仓库
// 奖励数据在启动时从SQLite载入内存，之后只读
type repository struct {
	idToReward  map[string]Reward
	rewardOrder []string
}

var (
	repoMutex        sync.RWMutex
	globalRepository *repository
)

// PrimeDB 迁移奖励目录的表结构，并在目录为空时写入种子数据
func PrimeDB() error {
	if err := database.DB.AutoMigrate(&Reward{}); err != nil {
		return fmt.Errorf("无法迁移Reward表: %w", err)
	}

	var count int64
	if err := database.DB.Model(&Reward{}).Count(&count).Error; err != nil {
		return fmt.Errorf("无法统计Reward表: %w", err)
	}
	if count == 0 {
		if err := database.DB.Create(seedRewards()).Error; err != nil {
			return fmt.Errorf("写入奖励种子数据失败: %w", err)
		}
		fmt.Println("奖励目录种子数据已写入SQLite。")
	}

	return InitializeRepository()
}

// InitializeRepository 从SQLite加载奖励目录到内存仓库
func InitializeRepository() error {
	var rewards []Reward
	if err := database.DB.Order("id asc").Find(&rewards).Error; err != nil {
		return fmt.Errorf("无法从SQLite加载奖励目录: %w", err)
	}
	primeRepository(rewards)
	return nil
}

func primeRepository(rewards []Reward) {
	repo := &repository{idToReward: make(map[string]Reward, len(rewards))}
	for _, r := range rewards {
		repo.idToReward[r.RewardID] = r
		repo.rewardOrder = append(repo.rewardOrder, r.RewardID)
	}

	repoMutex.Lock()
	globalRepository = repo
	repoMutex.Unlock()
}

// PrimeRepositoryForTest 直接用种子数据初始化内存仓库，绕过SQLite
func PrimeRepositoryForTest() {
	primeRepository(seedRewards())
}

// GetRewardByID 按业务ID查找奖励
func GetRewardByID(id string) (Reward, bool) {
	repoMutex.RLock()
	defer repoMutex.RUnlock()
	if globalRepository == nil {
		return Reward{}, false
	}
	r, ok := globalRepository.idToReward[id]
	return r, ok
}

// Rewards 按目录顺序返回所有奖励
func Rewards() []Reward {
	repoMutex.RLock()
	defer repoMutex.RUnlock()
	if globalRepository == nil {
		return nil
	}
	out := make([]Reward, 0, len(globalRepository.rewardOrder))
	for _, id := range globalRepository.rewardOrder {
		out = append(out, globalRepository.idToReward[id])
	}
	return out
}
