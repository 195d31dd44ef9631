package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	store := NewStore(path)

	if err := store.Load(); err != nil {
		t.Fatalf("loading an absent token file should not error: %v", err)
	}
	if store.Present() {
		t.Fatal("fresh store should have no session")
	}

	if err := store.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	if !store.Present() || store.Token() != "tok-123" {
		t.Fatalf("token not held after SetToken: %q", store.Token())
	}

	reloaded := NewStore(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if reloaded.Token() != "tok-123" {
		t.Fatalf("token did not survive reload: %q", reloaded.Token())
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if store.Present() {
		t.Fatal("token still present after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatal("token file still exists after Clear")
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clearing twice should be fine: %v", err)
	}
}

func TestStoreWritesPrivateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewStore(path)
	if err := store.SetToken("tok"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("token file mode = %o, want 600", perm)
	}
}

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing test token: %v", err)
	}
	return token
}

func TestClaimsDecode(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	store := NewStore(filepath.Join(t.TempDir(), "token"))
	store.token = signedTestToken(t, jwt.MapClaims{
		"sub":  42,
		"role": "admin",
		"exp":  exp,
	})

	claims, ok := store.Claims()
	if !ok {
		t.Fatal("claims should decode")
	}
	if claims.Subject != "42" {
		t.Fatalf("subject = %q, want 42", claims.Subject)
	}
	if claims.Role != "admin" {
		t.Fatalf("role = %q", claims.Role)
	}
	if claims.Expired(time.Now()) {
		t.Fatal("token with future exp should not look expired")
	}
	if !claims.Expired(time.Unix(exp, 0).Add(time.Minute)) {
		t.Fatal("token past exp should look expired")
	}
}

func TestClaimsOnOpaqueToken(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "token"))
	store.token = "not-a-jwt"

	if _, ok := store.Claims(); ok {
		t.Fatal("opaque token should not decode")
	}

	store.token = ""
	if _, ok := store.Claims(); ok {
		t.Fatal("empty session should have no claims")
	}
}
