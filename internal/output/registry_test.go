package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/trackerview/internal/view"
)

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func TestRegistry_Register_And_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register("count", func(rows []view.Row, _ Options) ([]byte, error) {
		return []byte{byte('0' + len(rows))}, nil
	})

	out, err := r.Render("count", make([]view.Row, 3), Options{})
	require.NoError(t, err)
	assert.Equal(t, "3", string(out))
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewRegistry()

	_, err := r.Formatter("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "available: none")
}

func TestRegistry_Overwrite(t *testing.T) {
	r := NewRegistry()
	r.Register("fmt", func([]view.Row, Options) ([]byte, error) { return []byte("old"), nil })
	r.Register("fmt", func([]view.Row, Options) ([]byte, error) { return []byte("new"), nil })

	out, err := r.Render("fmt", nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "new", string(out))
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.Equal(t, []string{"csv", "html", "json", "markdown", "table", "yaml"}, r.Formats())
	assert.Equal(t, "csv, html, json, markdown, table, yaml", r.AvailableFormats())
}
