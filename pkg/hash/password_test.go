package hash

import (
	"strings"
	"testing"
)

func TestHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "valid password",
			password: "SecurePass123!",
			wantErr:  false,
		},
		{
			name:     "minimum length password",
			password: "Pass123!",
			wantErr:  false,
		},
		{
			name:     "password too short",
			password: "short",
			wantErr:  true,
		},
		{
			name:     "empty password",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := Hash(tt.password)

			if tt.wantErr {
				if err == nil {
					t.Error("Hash() expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("Hash() unexpected error = %v", err)
				return
			}

			if digest == "" {
				t.Error("Hash() returned empty digest")
			}

			if digest == tt.password {
				t.Error("Hash() returned unhashed password")
			}

			if !strings.HasPrefix(digest, "$2a$12$") {
				t.Errorf("Hash() invalid bcrypt format, got = %s", digest[:10])
			}
		})
	}
}

func TestHashSaltsEveryCall(t *testing.T) {
	password := "SamePassword123!"

	digest1, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	digest2, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if digest1 == digest2 {
		t.Error("Hash() should generate different digests for same password (salt)")
	}
}

func TestCompare(t *testing.T) {
	password := "MySecurePassword123!"
	digest, err := Hash(password)
	if err != nil {
		t.Fatalf("Failed to generate digest: %v", err)
	}

	tests := []struct {
		name     string
		digest   string
		password string
		wantErr  bool
	}{
		{
			name:     "correct password",
			digest:   digest,
			password: password,
			wantErr:  false,
		},
		{
			name:     "incorrect password",
			digest:   digest,
			password: "WrongPassword",
			wantErr:  true,
		},
		{
			name:     "empty password",
			digest:   digest,
			password: "",
			wantErr:  true,
		},
		{
			name:     "malformed digest",
			digest:   "not-a-bcrypt-digest",
			password: password,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(tt.digest, tt.password)

			if tt.wantErr {
				if err == nil {
					t.Error("Compare() expected error but got none")
				}
			} else {
				if err != nil {
					t.Errorf("Compare() unexpected error = %v", err)
				}
			}
		})
	}
}

func BenchmarkHash(b *testing.B) {
	password := "BenchmarkPassword123!"

	for i := 0; i < b.N; i++ {
		_, err := Hash(password)
		if err != nil {
			b.Fatalf("Hash() error = %v", err)
		}
	}
}
