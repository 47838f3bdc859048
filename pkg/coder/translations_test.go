package coder

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDecode(t *testing.T, s string) map[string]any {
	t.Helper()
	var data map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &data))
	return data
}

func TestFlattenLeafKeys(t *testing.T) {
	data := mustDecode(t, `{
		"hero": {"title": "Welcome", "subtitle": "Hi"},
		"menu": {"items": ["a", "b"], "title": "Menu"}
	}`)
	require.Equal(t,
		[]string{"hero.subtitle", "hero.title", "menu.items", "menu.title"},
		FlattenLeafKeys(data))
}

func TestValidateLocaleSymmetry(t *testing.T) {
	en := mustDecode(t, `{"menu": {"items": ["a", "b"], "title": "Menu"}}`)

	t.Run("symmetric locales pass", func(t *testing.T) {
		ar := mustDecode(t, `{"menu": {"items": ["أ", "ب"], "title": "القائمة"}}`)
		require.NoError(t, ValidateLocaleSymmetry(en, ar))
	})

	t.Run("object instead of array fails", func(t *testing.T) {
		ar := mustDecode(t, `{"menu": {"items": {"0": "أ", "1": "ب"}, "title": "القائمة"}}`)
		require.Error(t, ValidateLocaleSymmetry(en, ar))
	})

	t.Run("missing array key fails", func(t *testing.T) {
		ar := mustDecode(t, `{"menu": {"title": "القائمة"}}`)
		require.Error(t, ValidateLocaleSymmetry(en, ar))
	})

	t.Run("string instead of array fails", func(t *testing.T) {
		ar := mustDecode(t, `{"menu": {"items": "أ، ب", "title": "القائمة"}}`)
		require.Error(t, ValidateLocaleSymmetry(en, ar))
	})
}

func TestArrayLeafPaths(t *testing.T) {
	data := mustDecode(t, `{
		"menu": {"items": ["a"]},
		"gallery": {"images": ["x"], "title": "G"},
		"hero": {"title": "W"}
	}`)
	require.Equal(t, []string{"gallery.images", "menu.items"}, ArrayLeafPaths(data))
}
