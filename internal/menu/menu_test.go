package menu

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	items := c.Items()
	require.NotEmpty(t, items)

	item, ok := c.Lookup("bulgogi_burger")
	require.True(t, ok)
	assert.Equal(t, int64(5000), item.Price)
}

func TestValidateItems(t *testing.T) {
	tests := []struct {
		name  string
		items []Item
		ok    bool
	}{
		{"valid", []Item{{ID: "a", Name: "A", Price: 100}}, true},
		{"empty", nil, false},
		{"missing id", []Item{{Name: "A", Price: 100}}, false},
		{"path id", []Item{{ID: "../etc", Name: "A", Price: 100}}, false},
		{"slash id", []Item{{ID: "a/b", Name: "A", Price: 100}}, false},
		{"duplicate", []Item{{ID: "a", Name: "A"}, {ID: "a", Name: "B"}}, false},
		{"no name", []Item{{ID: "a", Price: 100}}, false},
		{"negative price", []Item{{ID: "a", Name: "A", Price: -1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateItems(tt.items)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrInvalidMenu), "got %v", err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	doc := `
items:
  - id: tteokbokki
    name: 떡볶이
    price: 4500
    category: snack
  - id: sikhye
    name: 식혜
    price: 2000
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err := LoadFile(path)
	require.NoError(t, err)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "tteokbokki", items[0].ID)
	assert.Equal(t, "떡볶이", items[0].Name)
	assert.Equal(t, int64(4500), items[0].Price)
	assert.Equal(t, "snack", items[0].Category)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - id: a\n    price: 10\n"), 0o644))

	_, err := LoadFile(path)
	assert.True(t, errors.Is(err, ErrInvalidMenu))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(Default())
	r.GET("/api/menu", h.List)
	r.GET("/api/menu/:id", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, DefaultItems(), resp.Items)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/menu/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
