package auth_test

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/phrazzld/taskmanager-api/internal/config"
	"github.com/phrazzld/taskmanager-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-jwt-secret-that-is-32-chars-long"
	otherSecret = "another-jwt-secret-that-is-32-chars-long"
)

var fixedTime = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            testSecret,
		TokenLifetimeMinutes: 60,
		BcryptCost:           4,
	}
}

func newTestCodec(t *testing.T, cfg config.AuthConfig) auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewHMACTokenCodec(cfg)
	require.NoError(t, err)
	return codec
}

func TestNewHMACTokenCodec_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.AuthConfig)
	}{
		{name: "short secret", mutate: func(c *config.AuthConfig) { c.JWTSecret = "short" }},
		{name: "zero lifetime", mutate: func(c *config.AuthConfig) { c.TokenLifetimeMinutes = 0 }},
		{name: "negative skew", mutate: func(c *config.AuthConfig) { c.ClockSkewSeconds = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testAuthConfig()
			tt.mutate(&cfg)

			codec, err := auth.NewHMACTokenCodec(cfg)
			assert.Error(t, err)
			assert.Nil(t, codec)
		})
	}
}

func TestTokenCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()

	issued, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	assert.Equal(t, fixedTime.Add(time.Hour).Unix(), issued.ExpiresAt.Unix())
	assert.Len(t, strings.Split(issued.Token, "."), 3)

	claims, err := codec.Verify(ctx, issued.Token, fixedTime.Add(30*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, fixedTime.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, issued.ExpiresAt.Unix(), claims.ExpiresAt.Unix())
	assert.NotEmpty(t, claims.ID)
}

func TestTokenCodec_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()

	first, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)
	second, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)
}

func TestTokenCodec_IssueRejectsEmptySubject(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())

	_, err := codec.Issue(context.Background(), "", fixedTime)
	assert.Error(t, err)
}

func TestTokenCodec_Expiry(t *testing.T) {
	t.Parallel()

	lifetime := time.Hour
	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()

	issued, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{name: "just issued", now: fixedTime},
		{name: "one second before expiry", now: fixedTime.Add(lifetime - time.Second)},
		{name: "exactly at expiry", now: fixedTime.Add(lifetime)},
		{name: "one second after expiry", now: fixedTime.Add(lifetime + time.Second), wantErr: auth.ErrExpiredToken},
		{name: "a day later", now: fixedTime.Add(24 * time.Hour), wantErr: auth.ErrExpiredToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := codec.Verify(ctx, issued.Token, tt.now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, auth.ErrInvalidToken)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "alice", claims.Subject)
		})
	}
}

func TestTokenCodec_ClockSkew(t *testing.T) {
	t.Parallel()

	cfg := testAuthConfig()
	cfg.ClockSkewSeconds = 30
	codec := newTestCodec(t, cfg)
	ctx := context.Background()

	issued, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)

	_, err = codec.Verify(ctx, issued.Token, fixedTime.Add(time.Hour+30*time.Second))
	assert.NoError(t, err)

	_, err = codec.Verify(ctx, issued.Token, fixedTime.Add(time.Hour+31*time.Second))
	assert.ErrorIs(t, err, auth.ErrExpiredToken)
}

// replaceAt returns s with the byte at i swapped for a different base64url character.
func replaceAt(s string, i int) string {
	replacement := byte('A')
	if s[i] == 'A' {
		replacement = 'B'
	}
	return s[:i] + string(replacement) + s[i+1:]
}

func TestTokenCodec_TamperedTokenFailsSignature(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()

	issued, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)

	token := issued.Token
	dots := 0
	for i := 0; i < len(token); i++ {
		if token[i] == '.' {
			dots++
			continue
		}
		// Every character of every segment is covered by the signature,
		// including the last one.
		tampered := replaceAt(token, i)
		_, err := codec.Verify(ctx, tampered, fixedTime)
		require.ErrorIs(t, err, auth.ErrBadSignature, "tamper at index %d", i)
	}
	require.Equal(t, 2, dots)
}

func TestTokenCodec_ForgedClaimsFailSignature(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()

	issued, err := codec.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)

	// Swap in claims for another user while keeping alice's signature
	parts := strings.Split(issued.Token, ".")
	forged := base64.RawURLEncoding.EncodeToString(
		[]byte(`{"sub":"mallory","exp":4102444800}`),
	)
	token := parts[0] + "." + forged + "." + parts[2]

	_, err = codec.Verify(ctx, token, fixedTime)
	assert.ErrorIs(t, err, auth.ErrBadSignature)
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestCodec(t, testAuthConfig())
	otherCfg := testAuthConfig()
	otherCfg.JWTSecret = otherSecret
	verifier := newTestCodec(t, otherCfg)
	ctx := context.Background()

	issued, err := issuer.Issue(ctx, "alice", fixedTime)
	require.NoError(t, err)

	_, err = verifier.Verify(ctx, issued.Token, fixedTime)
	assert.ErrorIs(t, err, auth.ErrBadSignature)
}

// signRaw produces a correctly signed token with arbitrary header and claims JSON.
func signRaw(t *testing.T, secret, header, claims string) string {
	t.Helper()
	input := base64.RawURLEncoding.EncodeToString([]byte(header)) + "." +
		base64.RawURLEncoding.EncodeToString([]byte(claims))
	sig, err := jwt.SigningMethodHS256.Sign(input, []byte(secret))
	require.NoError(t, err)
	return input + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func TestTokenCodec_Malformed(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()
	hs256 := `{"alg":"HS256","typ":"JWT"}`

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "one segment", token: "abc"},
		{name: "two segments", token: "abc.def"},
		{name: "too many segments", token: "this.is.not.a.valid.jwt.token"},
		{name: "empty segment", token: "abc..def"},
		{name: "not base64", token: "a*b.c$d.e!f"},
		{
			name:  "signed but not json",
			token: signRaw(t, testSecret, hs256, "not json"),
		},
		{
			name:  "missing subject",
			token: signRaw(t, testSecret, hs256, `{"exp":4102444800}`),
		},
		{
			name:  "missing expiry",
			token: signRaw(t, testSecret, hs256, `{"sub":"alice"}`),
		},
		{
			name:  "wrong algorithm in header",
			token: signRaw(t, testSecret, `{"alg":"HS512","typ":"JWT"}`, `{"sub":"alice","exp":4102444800}`),
		},
		{
			name:  "unknown algorithm",
			token: signRaw(t, testSecret, `{"alg":"none","typ":"JWT"}`, `{"sub":"alice","exp":4102444800}`),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := codec.Verify(ctx, tt.token, fixedTime)
			assert.ErrorIs(t, err, auth.ErrMalformedToken)
			assert.ErrorIs(t, err, auth.ErrInvalidToken)
			assert.Nil(t, claims)
		})
	}
}

func TestTokenCodec_ConcurrentUse(t *testing.T) {
	t.Parallel()

	codec := newTestCodec(t, testAuthConfig())
	ctx := context.Background()

	done := make(chan error, 20)
	for i := 0; i < cap(done); i++ {
		go func() {
			issued, err := codec.Issue(ctx, "alice", fixedTime)
			if err != nil {
				done <- err
				return
			}
			_, err = codec.Verify(ctx, issued.Token, fixedTime)
			done <- err
		}()
	}
	for i := 0; i < cap(done); i++ {
		assert.NoError(t, <-done)
	}
}
