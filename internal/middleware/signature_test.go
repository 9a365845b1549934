package middleware

import (
	"crypto/ed25519"
	"encoding/hex"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func signedRequest(t *testing.T, priv ed25519.PrivateKey, ts, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set("X-Signature-Timestamp", ts)
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(ed25519.Sign(priv, []byte(ts+body))))
	return req
}

func TestVerifySignature(t *testing.T) {
	gin.SetMode(gin.TestMode)
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatal(err)
	}
	r := gin.New()
	r.POST("/interactions", VerifySignature(pub), func(c *gin.Context) {
		b, _ := io.ReadAll(c.Request.Body)
		c.String(http.StatusOK, string(b))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, signedRequest(t, priv, "1700000000", `{"type":1}`))
	if w.Code != http.StatusOK || w.Body.String() != `{"type":1}` {
		t.Errorf("valid signature: code=%d body=%q", w.Code, w.Body.String())
	}

	// 篡改 body
	req := signedRequest(t, priv, "1700000000", `{"type":1}`)
	req.Body = io.NopCloser(strings.NewReader(`{"type":2}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("tampered body: code=%d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{}`))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing headers: code=%d", w.Code)
	}
}

func TestParsePublicKey(t *testing.T) {
	pub, _, _ := ed25519.GenerateKey(nil)
	got, err := ParsePublicKey(hex.EncodeToString(pub))
	if err != nil || !got.Equal(pub) {
		t.Fatalf("ParsePublicKey() = %v, %v", got, err)
	}
	for _, bad := range []string{"", "zz", "abcd"} {
		if _, err := ParsePublicKey(bad); err == nil {
			t.Errorf("ParsePublicKey(%q) expected error", bad)
		}
	}
}
