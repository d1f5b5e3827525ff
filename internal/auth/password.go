package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Custo fixo em 10 para manter compatibilidade com os hashes já
// gravados em users.password_hash.
const bcryptCost = 10

// Hash gera um hash bcrypt com salt embutido.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compara a senha em texto com o hash armazenado.
// Senha incorreta não é erro: retorna (false, nil).
func Verify(password, encodedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
