package tokens_test

import (
	"bytes"
	"testing"

	"github.com/artuross/lox/internal/commands/tokens"
	"github.com/artuross/lox/internal/lox/report"
	"github.com/artuross/lox/internal/lox/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWrite(t *testing.T) {
	scanned := scanner.New("(1.5 + \"a\")\n!", report.NewCollector()).ScanTokens()

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, tokens.Write(&out, tokens.FormatText, scanned))

		expected := "" +
			"   1 LEFT_PAREN ( nil\n" +
			"   1 NUMBER 1.5 1.5\n" +
			"   1 PLUS + nil\n" +
			"   1 STRING \"a\" a\n" +
			"   1 RIGHT_PAREN ) nil\n" +
			"   2 BANG ! nil\n" +
			"   2 EOF  nil\n"

		assert.Equal(t, expected, out.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, tokens.Write(&out, tokens.FormatYAML, scanned))

		var decoded []map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &decoded))
		require.Len(t, decoded, len(scanned))

		assert.Equal(t, "NUMBER", decoded[1]["type"])
		assert.Equal(t, "1.5", decoded[1]["lexeme"])
		assert.Equal(t, 1.5, decoded[1]["literal"])
		assert.Equal(t, "a", decoded[3]["literal"])
		assert.Equal(t, "EOF", decoded[6]["type"])
		assert.Equal(t, 2, decoded[6]["line"])
		assert.NotContains(t, decoded[0], "literal")
	})

	t.Run("unsupported format", func(t *testing.T) {
		assert.Error(t, tokens.Write(&bytes.Buffer{}, "xml", scanned))
	})
}
