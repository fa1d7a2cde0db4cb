package session

import (
	"fmt"

	"github.com/google/uuid"
)

// NewSessionID 生成一个新的会话UUID。
// 这个UUID将被设置到cookie中，作为会话内所有状态的键。
func NewSessionID() (string, error) {
	newUUID, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("无法生成UUID v7: %w", err)
	}
	return newUUID.String(), nil
}

// IsValidSessionID 检查一个字符串是否是格式正确的UUID。
func IsValidSessionID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
