package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateSessionToken cria um token opaco de 256 bits codificado em hex.
func GenerateSessionToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// SessionCacheKey monta a chave de cache de uma sessão.
func SessionCacheKey(token string) string {
	return "session:" + token
}
