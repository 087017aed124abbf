package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unisearch/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestSessionTokens_RoundTrip(t *testing.T) {
	tokens, err := models.NewSessionTokens(testSecret, time.Hour)
	require.NoError(t, err)

	id := models.NewSessionID()
	signed, err := tokens.Issue(id)
	require.NoError(t, err)

	got, err := tokens.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSessionTokens_ShortSecretRejected(t *testing.T) {
	_, err := models.NewSessionTokens("too-short", time.Hour)
	assert.Error(t, err)
}

func TestSessionTokens_RandomSecretWhenEmpty(t *testing.T) {
	a, err := models.NewSessionTokens("", time.Hour)
	require.NoError(t, err)
	b, err := models.NewSessionTokens("", time.Hour)
	require.NoError(t, err)

	signed, err := a.Issue("abc")
	require.NoError(t, err)

	_, err = b.Validate(signed)
	assert.Error(t, err, "a token from another process secret must not validate")
}

func TestSessionTokens_RejectsTampered(t *testing.T) {
	tokens, err := models.NewSessionTokens(testSecret, time.Hour)
	require.NoError(t, err)

	signed, err := tokens.Issue("abc")
	require.NoError(t, err)

	parts := strings.Split(signed, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	_, err = tokens.Validate(tampered)
	assert.Error(t, err)

	_, err = tokens.Validate("garbage")
	assert.Error(t, err)
}

func TestSessionTokens_Expired(t *testing.T) {
	tokens, err := models.NewSessionTokens(testSecret, -time.Minute)
	require.NoError(t, err)

	// a negative ttl is treated as no expiry
	signed, err := tokens.Issue("abc")
	require.NoError(t, err)
	_, err = tokens.Validate(signed)
	assert.NoError(t, err)

	short, err := models.NewSessionTokens(testSecret, time.Nanosecond)
	require.NoError(t, err)
	signed, err = short.Issue("abc")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = short.Validate(signed)
	assert.Error(t, err)
}

func TestNewSessionIDUnique(t *testing.T) {
	assert.NotEqual(t, models.NewSessionID(), models.NewSessionID())
}
