package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	InitHashSaltForTesting("test-salt-for-unit-tests-minimum-32-chars")
	os.Exit(m.Run())
}

func TestHashID(t *testing.T) {
	t.Run("produces consistent hash for same ID", func(t *testing.T) {
		require.Equal(t, HashID("client-1"), HashID("client-1"))
	})

	t.Run("produces different hashes for different IDs", func(t *testing.T) {
		require.NotEqual(t, HashID("client-1"), HashID("client-2"))
	})

	t.Run("produces 8 character hash", func(t *testing.T) {
		require.Len(t, HashID("project-1"), 8)
	})

	t.Run("changes hash when salt changes", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		hash1 := HashID("client-1")
		hashSalt = "different-salt"
		hash2 := HashID("client-1")

		require.NotEqual(t, hash1, hash2)
	})
}

func TestSanitizeText(t *testing.T) {
	t.Run("redacts empty text", func(t *testing.T) {
		require.Equal(t, "<empty>", SanitizeText(""))
	})

	t.Run("shows length for short text", func(t *testing.T) {
		require.Equal(t, "<5 chars>", SanitizeText("Nimal"))
	})

	t.Run("shows prefix for longer text", func(t *testing.T) {
		result := SanitizeText("Perera Holdings Ltd")
		require.Contains(t, result, "Per...")
		require.Contains(t, result, "19 chars")
		require.NotContains(t, result, "Holdings")
	})
}

func TestSanitizeEmail(t *testing.T) {
	require.Equal(t, "***@example.com", SanitizeEmail("nimal@example.com"))
	require.Equal(t, "<5 chars>", SanitizeEmail("nimal"))
}

func TestInitHashSalt(t *testing.T) {
	t.Run("empty salt selects the built-in salt", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		require.NoError(t, InitHashSalt(""))
		require.Equal(t, defaultHashSalt, hashSalt)
	})

	t.Run("rejects a short salt and keeps the current one", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		require.ErrorIs(t, InitHashSalt("short"), ErrHashSaltTooShort)
		require.Equal(t, originalSalt, hashSalt)
	})

	t.Run("accepts a long enough salt", func(t *testing.T) {
		originalSalt := hashSalt
		defer func() { hashSalt = originalSalt }()

		validSalt := "this-is-a-valid-salt-with-at-least-32-characters"
		require.NoError(t, InitHashSalt(validSalt))
		require.Equal(t, validSalt, hashSalt)
	})
}
