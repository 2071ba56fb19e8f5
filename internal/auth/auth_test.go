package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(subject string) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{Subject: subject}
}

func TestSigner_RoundTrip(t *testing.T) {
	s := NewSigner("test-secret")

	token, err := s.GenerateToken("user-1", true)
	require.NoError(t, err)

	claims, err := s.ParseToken(token, KindSession)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.True(t, claims.Anonymous)
	assert.NotEmpty(t, claims.ID)
}

func TestSigner_RejectsForeignAndExpiredTokens(t *testing.T) {
	s := NewSigner("test-secret")
	other := NewSigner("another-secret")

	token, err := other.GenerateToken("user-1", false)
	require.NoError(t, err)
	_, err = s.ParseToken(token, KindSession)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = s.ParseToken("not-a-jwt", KindSession)
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := NewSigner("test-secret")
	past.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, err = past.GenerateToken("user-1", false)
	require.NoError(t, err)
	_, err = s.ParseToken(token, KindSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSigner_KindIsEnforced(t *testing.T) {
	s := NewSigner("test-secret")
	custom, err := s.GenerateCustomToken("user-1")
	require.NoError(t, err)

	_, err = s.ParseToken(custom, KindSession)
	assert.ErrorIs(t, err, ErrWrongKind, "a custom token cannot be used as a session")
}

func TestSigner_EmptySubject(t *testing.T) {
	_, err := NewSigner("test-secret").GenerateToken("", false)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIdentity_SignInAnonymously(t *testing.T) {
	s := NewSigner("test-secret")
	i := NewIdentity(s)

	var seen []string
	unregister := i.OnIdentityChange(func(subject string) { seen = append(seen, subject) })
	defer unregister()

	_, ok := i.CurrentSubjectID()
	assert.False(t, ok)

	token, err := i.SignInAnonymously()
	require.NoError(t, err)
	subject, ok := i.CurrentSubjectID()
	require.True(t, ok)
	assert.True(t, i.IsAnonymous())

	claims, err := s.ParseToken(token, KindSession)
	require.NoError(t, err)
	assert.Equal(t, subject, claims.Subject)

	i.SignOut()
	_, ok = i.CurrentSubjectID()
	assert.False(t, ok)
	assert.Equal(t, []string{subject, ""}, seen)
}

func TestIdentity_SignInWithToken(t *testing.T) {
	s := NewSigner("test-secret")
	i := NewIdentity(s)

	custom, err := s.GenerateCustomToken("store-42")
	require.NoError(t, err)

	session, err := i.SignInWithToken(custom)
	require.NoError(t, err)
	subject, _ := i.CurrentSubjectID()
	assert.Equal(t, "store-42", subject)
	assert.False(t, i.IsAnonymous())

	claims, err := s.ParseToken(session, KindSession)
	require.NoError(t, err)
	assert.Equal(t, "store-42", claims.Subject)

	_, err = i.SignInWithToken(session)
	assert.ErrorIs(t, err, ErrWrongKind, "a session token is not a custom token")
}

func TestIdentity_ListenersOnlyHearChanges(t *testing.T) {
	i := NewIdentity(NewSigner("test-secret"))
	calls := 0
	unregister := i.OnIdentityChange(func(string) { calls++ })

	i.Restore(&Claims{RegisteredClaims: claimsFor("a")})
	i.Restore(&Claims{RegisteredClaims: claimsFor("a")})
	assert.Equal(t, 1, calls)

	unregister()
	unregister()
	i.SignOut()
	assert.Equal(t, 1, calls)
}

func TestInMemoryRevocations(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRevocations()

	revoked, err := r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-1", time.Now().Add(time.Hour)))
	revoked, err = r.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti-2", time.Now().Add(-time.Second)))
	revoked, err = r.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked, "revocations end when the token would have expired")
}

func TestInMemoryRevocations_RevokePrunesExpired(t *testing.T) {
	ctx := context.Background()
	r := NewInMemoryRevocations()
	start := time.Now()
	r.now = func() time.Time { return start }

	require.NoError(t, r.Revoke(ctx, "jti-old", start.Add(time.Minute)))
	require.NoError(t, r.Revoke(ctx, "jti-live", start.Add(time.Hour)))

	r.now = func() time.Time { return start.Add(2 * time.Minute) }
	require.NoError(t, r.Revoke(ctx, "jti-new", start.Add(time.Hour)))

	assert.NotContains(t, r.revoked, "jti-old", "expired ids are dropped without being looked up")
	assert.Contains(t, r.revoked, "jti-live")
	assert.Contains(t, r.revoked, "jti-new")
}

func TestClaimsContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", SubjectFrom(ctx))

	ctx = WithClaims(ctx, &Claims{RegisteredClaims: claimsFor("user-9")})
	assert.Equal(t, "user-9", SubjectFrom(ctx))
}
