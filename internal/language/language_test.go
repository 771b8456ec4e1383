package language

import (
	"strings"
	"testing"

	apperrors "textunited-client/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByCode(t *testing.T) {
	t.Run("different formats return the same language", func(t *testing.T) {
		for _, code := range []string{"es_es", "es-es", "es_ES", "es-ES"} {
			lang, err := ByCode(code)
			require.NoError(t, err, code)
			assert.Equal(t, EsES, lang, code)
		}
	})

	t.Run("every registered code resolves in all shapes", func(t *testing.T) {
		for _, lang := range All() {
			code := lang.Code()
			for _, variant := range []string{code, strings.ToUpper(code), strings.ReplaceAll(code, "_", "-")} {
				got, err := ByCode(variant)
				require.NoError(t, err, variant)
				assert.Equal(t, lang, got, variant)
			}
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := ByCode("xx_yy")
		assert.True(t, apperrors.IsUnsupportedLanguage(err))
	})
}

func TestByID(t *testing.T) {
	t.Run("registered id", func(t *testing.T) {
		lang, err := ByID(41)
		require.NoError(t, err)
		assert.Equal(t, EnUS, lang)
		assert.Equal(t, "en_us", lang.Code())
	})

	t.Run("unregistered ids always fail", func(t *testing.T) {
		for _, id := range []int{0, -1, 39, 92, 9999} {
			lang, err := ByID(id)
			assert.Error(t, err, id)
			assert.True(t, apperrors.IsUnsupportedLanguage(err), id)
			assert.Equal(t, Language(0), lang)
		}
	})
}

func TestTableIsBijective(t *testing.T) {
	seen := map[string]Language{}
	for _, lang := range All() {
		code := lang.Code()
		_, dup := seen[code]
		assert.False(t, dup, code)
		seen[code] = lang

		back, err := ByID(lang.ID())
		require.NoError(t, err)
		assert.Equal(t, lang, back)
	}
	assert.Len(t, seen, 13)
}

func TestString(t *testing.T) {
	assert.Equal(t, "zh_hant", ZhHant.String())
	assert.Equal(t, "unknown", Language(1).String())
	assert.False(t, Language(1).IsValid())
	assert.Equal(t, "", Language(1).Code())
}
