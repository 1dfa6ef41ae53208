package jwt

import (
	"errors"
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		username   string
		expiration time.Duration
		secret     string
	}{
		{
			name:       "valid token generation",
			userID:     "user-123",
			username:   "alice",
			expiration: 15 * time.Minute,
			secret:     "test-secret-key-32-characters!",
		},
		{
			name:       "short expiration",
			userID:     "user-456",
			username:   "bob",
			expiration: 1 * time.Second,
			secret:     "test-secret",
		},
		{
			name:       "long expiration",
			userID:     "user-789",
			username:   "carol",
			expiration: 24 * time.Hour,
			secret:     "test-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.username, tt.expiration, tt.secret)
			if err != nil {
				t.Errorf("GenerateToken() error = %v", err)
				return
			}

			if token == "" {
				t.Error("GenerateToken() returned empty token")
			}

			if len(token) < 100 {
				t.Errorf("GenerateToken() token too short, len = %d", len(token))
			}
		})
	}
}

func TestValidateToken(t *testing.T) {
	userID := "test-user-id"
	username := "testuser"
	secret := "validation-secret-key-32-chars"

	validToken, _ := GenerateToken(userID, username, 1*time.Hour, secret)
	expiredToken, _ := GenerateToken(userID, username, -1*time.Hour, secret)

	tests := []struct {
		name        string
		token       string
		secret      string
		wantErr     bool
		checkClaims bool
	}{
		{
			name:        "valid token",
			token:       validToken,
			secret:      secret,
			wantErr:     false,
			checkClaims: true,
		},
		{
			name:    "expired token",
			token:   expiredToken,
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "wrong secret",
			token:   validToken,
			secret:  "wrong-secret",
			wantErr: true,
		},
		{
			name:    "invalid token format",
			token:   "invalid.token.format",
			secret:  secret,
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			secret:  secret,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ValidateToken(tt.token, tt.secret)

			if tt.wantErr {
				if err == nil {
					t.Error("ValidateToken() expected error but got none")
					return
				}
				// Every failure mode reports the same error.
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("ValidateToken() error = %v, want ErrInvalidToken", err)
				}
				return
			}

			if err != nil {
				t.Errorf("ValidateToken() error = %v", err)
				return
			}

			if claims == nil {
				t.Error("ValidateToken() returned nil claims")
				return
			}

			if tt.checkClaims {
				if claims.UserID != userID {
					t.Errorf("ValidateToken() userID = %v, want %v", claims.UserID, userID)
				}
				if claims.Username != username {
					t.Errorf("ValidateToken() username = %v, want %v", claims.Username, username)
				}
			}
		})
	}
}

func TestTokenExpiration(t *testing.T) {
	userID := "expiration-test-user"
	secret := "expiration-test-secret"

	token, err := GenerateToken(userID, "expuser", 1*time.Second, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() immediate validation error = %v", err)
	}

	if claims.UserID != userID {
		t.Errorf("ValidateToken() userID = %v, want %v", claims.UserID, userID)
	}

	time.Sleep(2 * time.Second)

	if _, err := ValidateToken(token, secret); err == nil {
		t.Error("ValidateToken() expected error for expired token")
	}
}

func TestClaimsTimestamps(t *testing.T) {
	secret := "timestamp-test-secret"
	expiration := 1 * time.Hour

	before := time.Now().Add(-1 * time.Second)
	token, err := GenerateToken("timestamp-test-user", "tsuser", expiration, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	after := time.Now().Add(1 * time.Second)

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	issuedAt := claims.IssuedAt.Time
	if issuedAt.Before(before) || issuedAt.After(after) {
		t.Errorf("IssuedAt timestamp out of expected range: got %v, range [%v, %v]",
			issuedAt, before, after)
	}

	expiresAt := claims.ExpiresAt.Time
	expectedExpiry := before.Add(expiration)
	upperBound := after.Add(expiration)
	if expiresAt.Before(expectedExpiry) || expiresAt.After(upperBound) {
		t.Errorf("ExpiresAt timestamp out of expected range: got %v, range [%v, %v]",
			expiresAt, expectedExpiry, upperBound)
	}
}

func BenchmarkValidateToken(b *testing.B) {
	secret := "benchmark-secret-key"
	token, _ := GenerateToken("benchmark-user", "benchuser", 15*time.Minute, secret)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := ValidateToken(token, secret); err != nil {
			b.Fatalf("ValidateToken() error = %v", err)
		}
	}
}
