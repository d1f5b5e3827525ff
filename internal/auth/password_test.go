package auth

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("senha-secreta")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("esperado hash bcrypt, obtido %q", hash)
	}

	ok, err := Verify("senha-secreta", hash)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatal("senha correta deveria verificar")
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	hash, err := Hash("senha-secreta")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	ok, err := Verify("outra-senha", hash)
	if err != nil {
		t.Fatalf("senha errada não é erro: %v", err)
	}
	if ok {
		t.Fatal("senha errada não deveria verificar")
	}
}

func TestHashNotDeterministic(t *testing.T) {
	h1, _ := Hash("mesma-senha")
	h2, _ := Hash("mesma-senha")
	if h1 == h2 {
		t.Fatal("hashes com salts distintos não podem coincidir")
	}
}

func TestGenerateSessionToken(t *testing.T) {
	t1, err := GenerateSessionToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	if len(t1) != 64 {
		t.Fatalf("esperado token de 64 hex chars, obtido %d", len(t1))
	}
	if _, err := hex.DecodeString(t1); err != nil {
		t.Fatalf("token não é hex: %v", err)
	}

	t2, _ := GenerateSessionToken()
	if t1 == t2 {
		t.Fatal("tokens consecutivos não podem coincidir")
	}
}
