package services_test

import (
	"testing"

	"github.com/srgjo27/healthbook/internal/core/services"
	"github.com/stretchr/testify/assert"
)

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"ref_123"}}`)
	secret := "sk_test_secret"
	valid := services.Sign(body, secret)

	tests := []struct {
		name   string
		body   []byte
		header string
		secret string
		want   bool
	}{
		{"matching signature", body, valid, secret, true},
		{"tampered body", []byte(`{"event":"charge.success"}`), valid, secret, false},
		{"wrong secret", body, valid, "sk_other", false},
		{"empty header", body, "", secret, false},
		{"empty secret", body, services.Sign(body, ""), "", false},
		{"uppercase hex", body, upper(valid), secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.VerifySignature(tt.body, tt.header, tt.secret))
		})
	}
}

func TestSign_IsHexSHA512(t *testing.T) {
	assert.Len(t, services.Sign([]byte("x"), "k"), 128)
}

func upper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'f' {
			b[i] = c - 'a' + 'A'
		}
	}
	return string(b)
}
