package main

import (
	"chatbot-backend/config"
	"chatbot-backend/middleware"
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

func generateJWTSecret() (string, error) {
	key := make([]byte, 32)
	_, err := rand.Read(key)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(key), nil
}

// 未配置密钥时生成新密钥，已配置时签发管理端token
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

	if err := config.Load(config.DefaultPath); err != nil {
		slog.Error("Failed to load config", "err", err)
		os.Exit(1)
	}

	if config.Cfg.JWT.SecretKey == "" {
		secret, err := generateJWTSecret()
		if err != nil {
			slog.Error("Error generating secret", "err", err)
			return
		}
		slog.Info("Generated JWT Secret:", "secret", secret)
		return
	}

	token, err := middleware.GenerateToken(middleware.SubjectAdmin)
	if err != nil {
		slog.Error("Error generating admin token", "err", err)
		return
	}

	slog.Info("Generated admin token:", "token", token)
}
