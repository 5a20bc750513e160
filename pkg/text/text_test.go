package text_test

import (
	"testing"

	"github.com/adrianliechti/narrator/pkg/text"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	require.Equal(t, "Hello world", text.Normalize("  Hello    world \t"))
	require.Equal(t, "Hello\nworld", text.Normalize("Hello\r\n   world"))
	require.Equal(t, "Hello\n\nworld", text.Normalize("Hello\n\n\n  \n world"))
	require.Equal(t, "", text.Normalize(" \n\t "))
}

func TestIsMarkdown(t *testing.T) {
	require.False(t, text.IsMarkdown("Hello world"))
	require.False(t, text.IsMarkdown("# just one heading"))
	require.True(t, text.IsMarkdown("# Title\n\nSome **bold** text"))
	require.True(t, text.IsMarkdown("- one\n- two\n\nsee [docs](https://example.org)"))
}

func TestPlainText(t *testing.T) {
	t.Run("inline formatting", func(t *testing.T) {
		input := "# Hello\n\nThis is **bold** and a [link](https://example.org)."

		require.Equal(t, "Hello\n\nThis is bold and a link.", text.PlainText(input))
	})

	t.Run("code blocks are dropped", func(t *testing.T) {
		input := "Intro\n\n```go\nfmt.Println(1)\n```\n\nOutro"

		require.Equal(t, "Intro\n\nOutro", text.PlainText(input))
	})

	t.Run("soft breaks join lines", func(t *testing.T) {
		require.Equal(t, "one two", text.PlainText("one\ntwo"))
	})
}

func TestPrepare(t *testing.T) {
	require.Equal(t, "Hello world", text.Prepare("  Hello   world "))
	require.Equal(t, "Title\n\nSome bold text", text.Prepare("# Title\n\nSome **bold** text"))
}
