package interaction

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uolflash/flash-feed-backend/internal/platform/database"
)

const (
	// shareKeyPrefix 是Redis中分享计数有序集合的键名前缀
	shareKeyPrefix = "session_shares:"
	// shareWindow 定义了分享频率计数的时间窗口
	shareWindow = 10 * time.Minute
	// shareTTL 是每个会话记录在Redis中的生存时间，比窗口稍长以作缓冲
	shareTTL = 11 * time.Minute
	// maxSharesPerWindow 是窗口内允许的最大分享次数
	maxSharesPerWindow = 30
)

// generateUniqueID 根据给定的时间生成一个16字节的、抗冲突的ID，并将其编码为Base64字符串。
// 结构: [ 8字节纳秒时间戳 (Big Endian) | 8字节随机数 ]
func generateUniqueID(t time.Time) (string, error) {
	b := make([]byte, 16)

	// 1. 写入8字节的纳秒时间戳
	timestamp := uint64(t.UnixNano())
	binary.BigEndian.PutUint64(b[0:8], timestamp)

	// 2. 写入8字节的随机数
	_, err := rand.Read(b[8:16])
	if err != nil {
		return "", err
	}

	// 3. 使用URL安全的Base64编码，没有padding，更紧凑
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// AllowShare 在Redis中为一个会话原子地记录一次分享，并检查过去shareWindow内的总次数。
// 超出maxSharesPerWindow时返回false。Redis不可用时放行，频率限制只是兜底。
func AllowShare(sessionID string, shareTime time.Time) bool {
	if database.RDB == nil || !database.IsRedisHealthy() {
		return true
	}

	key := shareKeyPrefix + sessionID
	// 1. 计算shareWindow前的时间戳，作为清理的边界
	minTimestamp := float64(shareTime.Add(-shareWindow).UnixMicro())

	// 2. 生成本次分享的Score和Member
	scoreTime := float64(shareTime.UnixMicro())
	memberID, err := generateUniqueID(shareTime)
	if err != nil {
		fmt.Printf("生成 memberID 失败: %v\n", err)
		return true
	}

	// 3. 使用Redis事务(TxPipeline)来保证所有操作的原子性
	pipe := database.RDB.TxPipeline()
	// a. 移除所有旧记录
	pipe.ZRemRangeByScore(database.Ctx, key, "-inf", fmt.Sprintf("(%f", minTimestamp))
	// b. 添加新记录
	pipe.ZAdd(database.Ctx, key, redis.Z{Score: scoreTime, Member: memberID})
	// c. 刷新过期时间
	pipe.Expire(database.Ctx, key, shareTTL)
	// d. 获取更新后的总数
	countCmd := pipe.ZCard(database.Ctx, key)

	// 4. 执行事务
	if _, err := pipe.Exec(database.Ctx); err != nil {
		fmt.Printf("执行分享计数事务失败: %v\n", err)
		return true
	}

	count, err := countCmd.Result()
	if err != nil {
		fmt.Printf("获取分享计数结果失败: %v\n", err)
		return true
	}

	return count <= maxSharesPerWindow
}
