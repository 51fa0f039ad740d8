package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345"

var testUserID = uuid.MustParse("7d9f1c2e-4b1a-4c55-9a0e-3f6b2f4e8a11")

func TestHashPassword(t *testing.T) {
	t.Run("Successfully hash password", func(t *testing.T) {
		hashed, err := HashPassword("mySecurePassword123")

		assert.NoError(t, err)
		assert.NotEmpty(t, hashed)
		assert.NotEqual(t, "mySecurePassword123", hashed)
	})

	t.Run("Different hashes for same password", func(t *testing.T) {
		hash1, _ := HashPassword("samePassword")
		hash2, _ := HashPassword("samePassword")

		assert.NotEqual(t, hash1, hash2)
	})
}

func TestCheckPassword(t *testing.T) {
	hashed, _ := HashPassword("correctPassword")

	assert.True(t, CheckPassword(hashed, "correctPassword"))
	assert.False(t, CheckPassword(hashed, "wrongPassword"))
	assert.False(t, CheckPassword(hashed, ""))
}

func TestIssue(t *testing.T) {
	t.Run("Token carries the identity", func(t *testing.T) {
		token, err := Issue(Identity{UserID: testUserID, Email: "barber@example.com", Role: RoleAdmin}, AccessToken, testSecret)
		require.NoError(t, err)

		claims, err := Parse(token, AccessToken, testSecret)
		require.NoError(t, err)

		assert.Equal(t, testUserID, claims.UserID)
		assert.Equal(t, testUserID.String(), claims.Subject)
		assert.Equal(t, "barber@example.com", claims.Email)
		assert.Equal(t, RoleAdmin, claims.Role)
		assert.Equal(t, AccessToken, claims.Kind)
	})

	t.Run("Fail with empty secret", func(t *testing.T) {
		token, err := Issue(testIdentity, AccessToken, "")

		assert.ErrorIs(t, err, ErrEmptyJWTSecret)
		assert.Empty(t, token)
	})
}

var testIdentity = Identity{UserID: testUserID, Email: "client@example.com", Role: RoleClient}

func TestIssuePair(t *testing.T) {
	pair, err := IssuePair(testIdentity, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, pair.Access, pair.Refresh)

	claims, err := Parse(pair.Refresh, RefreshToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.Kind)

	diff := claims.ExpiresAt.Time.Sub(time.Now().Add(RefreshToken.TTL())).Abs()
	assert.Less(t, diff, 2*time.Second)

	_, err = IssuePair(testIdentity, "")
	assert.ErrorIs(t, err, ErrEmptyJWTSecret)
}

func signed(t *testing.T, claims *Claims, method jwt.SigningMethod, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestParse(t *testing.T) {
	access, err := Issue(testIdentity, AccessToken, testSecret)
	require.NoError(t, err)
	refresh, err := Issue(testIdentity, RefreshToken, testSecret)
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	expired := signed(t, &Claims{
		Identity: testIdentity,
		Kind:     AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  []string{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-15 * time.Minute)),
		},
	}, jwt.SigningMethodHS256, []byte(testSecret))

	foreign := signed(t, &Claims{
		Identity: testIdentity,
		Kind:     AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			Audience:  []string{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS256, []byte(testSecret))

	wrongAlg := signed(t, &Claims{
		Identity: testIdentity,
		Kind:     AccessToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Audience:  []string{tokenAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, jwt.SigningMethodHS512, []byte(testSecret))

	tests := []struct {
		name    string
		token   string
		kind    TokenKind
		secret  string
		wantErr error
	}{
		{name: "access", token: access, kind: AccessToken, secret: testSecret},
		{name: "refresh", token: refresh, kind: RefreshToken, secret: testSecret},
		{name: "wrong secret", token: access, kind: AccessToken, secret: "wrong-secret", wantErr: ErrInvalidToken},
		{name: "garbage", token: "invalid.token.format", kind: AccessToken, secret: testSecret, wantErr: ErrInvalidToken},
		{name: "expired", token: expired, kind: AccessToken, secret: testSecret, wantErr: ErrTokenExpired},
		{name: "foreign issuer", token: foreign, kind: AccessToken, secret: testSecret, wantErr: ErrInvalidToken},
		{name: "unexpected algorithm", token: wrongAlg, kind: AccessToken, secret: testSecret, wantErr: ErrInvalidToken},
		{name: "access used as refresh", token: access, kind: RefreshToken, secret: testSecret, wantErr: ErrInvalidTokenType},
		{name: "refresh used as access", token: refresh, kind: AccessToken, secret: testSecret, wantErr: ErrInvalidTokenType},
		{name: "empty secret", token: access, kind: AccessToken, secret: "", wantErr: ErrEmptyJWTSecret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := Parse(tt.token, tt.kind, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testUserID, claims.UserID)
			assert.Equal(t, tt.kind, claims.Kind)
		})
	}
}
