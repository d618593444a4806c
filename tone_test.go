package postcraft_test

import (
	"testing"

	"github.com/fwojciec/postcraft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTone(t *testing.T) {
	t.Parallel()

	t.Run("accepts every supported tone", func(t *testing.T) {
		t.Parallel()

		for _, tone := range postcraft.Tones() {
			got, err := postcraft.ParseTone(string(tone))
			require.NoError(t, err)
			assert.Equal(t, tone, got)
		}
	})

	t.Run("ignores case and surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := postcraft.ParseTone("  Playful ")

		require.NoError(t, err)
		assert.Equal(t, postcraft.TonePlayful, got)
	})

	t.Run("rejects unknown tone", func(t *testing.T) {
		t.Parallel()

		_, err := postcraft.ParseTone("sarcastic")

		require.Error(t, err)
		assert.Equal(t, postcraft.EINVALID, postcraft.ErrorCode(err))
	})
}

func TestParseCallToAction(t *testing.T) {
	t.Parallel()

	t.Run("accepts camel case names", func(t *testing.T) {
		t.Parallel()

		got, err := postcraft.ParseCallToAction("joinConversation")

		require.NoError(t, err)
		assert.Equal(t, postcraft.CTAJoinConversation, got)
	})

	t.Run("accepts kebab case names", func(t *testing.T) {
		t.Parallel()

		got, err := postcraft.ParseCallToAction("read-now")

		require.NoError(t, err)
		assert.Equal(t, postcraft.CTAReadNow, got)
	})

	t.Run("rejects unknown call to action", func(t *testing.T) {
		t.Parallel()

		_, err := postcraft.ParseCallToAction("buy")

		require.Error(t, err)
		assert.Equal(t, postcraft.EINVALID, postcraft.ErrorCode(err))
	})
}

func TestCallToAction_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Talk to us", postcraft.CTAContact.Label())
	assert.Equal(t, "Join the conversation", postcraft.CTAJoinConversation.Label())
}
