package session

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	CookieName   = "flash-session"
	CookieMaxAge = 24 * 60 * 60
	SessionIDKey = "sessionID"
)

// EnsureSessionCookieMiddleware 确保请求携带一个格式正确的会话cookie。
// 如果没有或格式不正确，它会生成一个新的会话ID并设置cookie。
// 会话状态只存在于进程内存中，进程重启即全部清零。
func EnsureSessionCookieMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CookieName)

		// 如果Cookie不存在，或存在但格式不正确，则分发一个新的
		if err != nil || !IsValidSessionID(sessionID) {
			if err != http.ErrNoCookie {
				fmt.Printf("检测到无效的会话Cookie: %s, err: %v\n", sessionID, err)
			}
			newSessionID, err := NewSessionID()
			if err != nil {
				fmt.Printf("创建会话ID时发生错误: %v\n", err)
			} else {
				c.SetCookie(CookieName, newSessionID, CookieMaxAge, "/", "", false, true)
				sessionID = newSessionID
			}
		}

		c.Set(SessionIDKey, sessionID)
		Touch(sessionID)
		c.Next()
	}
}

// ID 从Gin上下文中读取当前请求的会话ID。
func ID(c *gin.Context) string {
	sessionID, _ := c.Get(SessionIDKey)
	s, _ := sessionID.(string)
	return s
}
