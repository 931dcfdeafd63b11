package jwt

import (
	"testing"
	"time"

	"github.com/jawal7886/doctor-roaster/config"
)

func newTestManager() *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-key-for-unit-testing-2026",
		AccessTokenTTL: 24 * time.Hour,
	})
}

func TestGenerateAndParseToken_Staff(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("user-1", UserTypeStaff, "admin")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserID != "user-1" {
		t.Errorf("期望 UserID=user-1，实际=%s", claims.UserID)
	}
	if claims.UserType != UserTypeStaff {
		t.Errorf("期望 UserType=staff，实际=%s", claims.UserType)
	}
	if claims.Role != "admin" {
		t.Errorf("期望 Role=admin，实际=%s", claims.Role)
	}
	if claims.Issuer != "doctor-roaster" {
		t.Errorf("期望 Issuer=doctor-roaster，实际=%s", claims.Issuer)
	}
	if claims.ID == "" {
		t.Error("JTI 不应为空")
	}
}

func TestGenerateAndParseToken_Account(t *testing.T) {
	m := newTestManager()

	token, err := m.GenerateToken("acct-1", UserTypeAccount, "")
	if err != nil {
		t.Fatalf("GenerateToken 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken 失败: %v", err)
	}

	if claims.UserType != UserTypeAccount {
		t.Errorf("期望 UserType=account，实际=%s", claims.UserType)
	}
	if claims.Role != "" {
		t.Errorf("公众账户不应携带 Role，实际=%s", claims.Role)
	}

	// 检查过期时间约为 24h
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 23*time.Hour || ttl > 25*time.Hour {
		t.Errorf("Token TTL 期望约24h，实际=%v", ttl)
	}
}

func TestParseToken_InvalidToken(t *testing.T) {
	m := newTestManager()

	_, err := m.ParseToken("invalid.token.string")
	if err == nil {
		t.Error("期望解析无效 token 返回错误")
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m1 := newTestManager()
	m2 := NewManager(&config.AuthConfig{
		JWTSecret:      "different-secret-key",
		AccessTokenTTL: 24 * time.Hour,
	})

	token, _ := m1.GenerateToken("user-1", UserTypeStaff, "admin")
	_, err := m2.ParseToken(token)
	if err == nil {
		t.Error("不同密钥签名的 token 不应通过验证")
	}
}

func TestParseToken_ExpiredToken(t *testing.T) {
	// 创建一个 TTL 极短的 manager 来测试过期
	m := NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 1 * time.Millisecond,
	})

	token, _ := m.GenerateToken("user-1", UserTypeStaff, "doctor")
	time.Sleep(10 * time.Millisecond)

	_, err := m.ParseToken(token)
	if err == nil {
		t.Error("过期 token 不应通过验证")
	}
	if err != ErrTokenExpired {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}
