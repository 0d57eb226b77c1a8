package resources_test

import (
	"encoding/json"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/pkg/view"
	"github.com/shashiranjanraj/pizzeria/resources"
)

func TestEmbeddedViewsParse(t *testing.T) {
	r, err := view.New(resources.Views(), view.Globals{AppName: "Pizzeria"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"accountCreate", "accountDeleted", "accountEdit", "cartFill", "index",
		"pizzaList", "pizzaOrder", "sessionCreate", "sessionDeleted",
	}, r.Names())
}

func TestEmbeddedPublicFiles(t *testing.T) {
	for _, name := range []string{"app.css", "app.js", "favicon.ico"} {
		_, err := fs.Stat(resources.Public(), name)
		assert.NoError(t, err, name)
	}
}

func TestEmbeddedMenuIsJSON(t *testing.T) {
	var items []map[string]any
	require.NoError(t, json.Unmarshal(resources.Menu, &items))
	assert.Len(t, items, 6)
}
