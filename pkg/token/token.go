package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
)

// secretKey 是一个全局变量，用于存储服务器在启动时生成的32字节密钥。
var secretKey []byte

// SpinTicket 定义了需要被签名的数据结构。
// 它在 /roulette/spin 的响应中下发，并在 /roulette/commit 的请求体中被带回，
// 以保证待发放的轮盘奖励金额在登录确认前后未被篡改。
type SpinTicket struct {
	SessionID string `json:"s"`
	PostID    string `json:"p"`
	Amount    int    `json:"a"`
}

// GenerateSecretKey 生成一个密码学安全的32字节随机密钥。
func GenerateSecretKey() {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		panic("无法生成安全的密钥: " + err.Error())
	}
	secretKey = key
	fmt.Println("HMAC密钥已成功生成。")
}

// GenerateSpinSignature 为一个给定的SpinTicket生成一个HMAC签名。
// 它返回的是签名的Base64编码字符串。
func GenerateSpinSignature(ticket SpinTicket) (string, error) {
	// 1. 将ticket序列化为JSON字符串
	ticketBytes, err := json.Marshal(ticket)
	if err != nil {
		return "", errors.New("无法序列化SpinTicket")
	}

	// 2. 使用HMAC-SHA256和密钥对ticket进行签名
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(ticketBytes)
	signature := mac.Sum(nil)

	// 3. 对签名进行Base64编码，并返回
	encodedSignature := base64.RawURLEncoding.EncodeToString(signature)
	return encodedSignature, nil
}

// ValidateSpinSignature 验证一个给定的ticket和签名是否匹配。
func ValidateSpinSignature(ticket SpinTicket, signatureB64 string) bool {
	// 1. 将传入的ticket重新序列化，以确保与签名时的数据格式完全一致
	ticketBytes, err := json.Marshal(ticket)
	if err != nil {
		return false // 如果序列化失败，则验证失败
	}

	// 2. 重新计算预期的签名
	mac := hmac.New(sha256.New, secretKey)
	mac.Write(ticketBytes)
	expectedSignature := mac.Sum(nil)

	// 3. 解码前端传来的签名
	actualSignature, err := base64.RawURLEncoding.DecodeString(signatureB64)
	if err != nil {
		return false // 签名解码失败
	}

	// 4. 使用 hmac.Equal 进行安全的、时间恒定的比较，防止时序攻击
	return hmac.Equal(expectedSignature, actualSignature)
}
