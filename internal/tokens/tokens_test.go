package tokens

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	accessSecret  = []byte("test_access_secret")
	refreshSecret = []byte("test_refresh_secret")
)

func TestAccessRoundTrip(t *testing.T) {
	now := time.Now()
	raw, err := SignAccess("user-1", "a@b.com", "admin", accessSecret, now)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	claims, err := ParseAccess(raw, accessSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "a@b.com", claims.Email)
	require.Equal(t, "admin", claims.Role)
	require.WithinDuration(t, now.Add(AccessTTL), claims.ExpiresAt.Time, time.Second)
}

func TestRefreshRoundTrip(t *testing.T) {
	raw, err := SignRefresh("user-1", "session-1", refreshSecret, time.Now())
	require.NoError(t, err)

	claims, err := ParseRefresh(raw, refreshSecret)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "session-1", claims.SessionID)
}

func TestParseExpired(t *testing.T) {
	issued := time.Now().Add(-AccessTTL - time.Minute)
	raw, err := SignAccess("user-1", "a@b.com", "admin", accessSecret, issued)
	require.NoError(t, err)

	_, err = ParseAccess(raw, accessSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseWrongSecret(t *testing.T) {
	raw, err := SignAccess("user-1", "a@b.com", "admin", accessSecret, time.Now())
	require.NoError(t, err)

	_, err = ParseAccess(raw, []byte("other_secret"))
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseMalformed(t *testing.T) {
	_, err := ParseAccess("not.a.jwt", accessSecret)
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseRefresh("", refreshSecret)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestSha256HexDeterministic(t *testing.T) {
	raw, err := SignRefresh("user-1", "session-1", refreshSecret, time.Now())
	require.NoError(t, err)

	require.Equal(t, Sha256Hex(raw), Sha256Hex(raw))
	require.Len(t, Sha256Hex(raw), 64)

	other, err := SignRefresh("user-1", "session-2", refreshSecret, time.Now())
	require.NoError(t, err)
	require.NotEqual(t, Sha256Hex(raw), Sha256Hex(other))
}
