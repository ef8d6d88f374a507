package document

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/packer/pkg/types"
)

func TestMarshalCompactProduct(t *testing.T) {
	data, err := Marshal(types.NewProduct("Box-A", 2, 3, 4).ToNode(), Compact)
	require.NoError(t, err)

	assert.Equal(t,
		`<?xml version="1.0" encoding="UTF-8"?><instance name="Box-A" width="2" height="3" length="4" type="product"/>`,
		string(data))
}

func TestMarshalIndented(t *testing.T) {
	data, err := Marshal(types.NewProduct("Box-A", 2, 3, 4).ToNode(), 2)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "<?xml"))
	assert.True(t, strings.HasPrefix(lines[1], `<instance name="Box-A"`))
}

func TestMarshalDoesNotDetachNode(t *testing.T) {
	parent := etree.NewElement("instances")
	node := parent.CreateElement("instance")
	node.CreateAttr("name", "a")

	_, err := Marshal(node, Compact)
	require.NoError(t, err)
	assert.Same(t, parent, node.Parent())
}

func TestMarshalNilNode(t *testing.T) {
	_, err := Marshal(nil, Compact)
	assert.ErrorIs(t, err, ErrEmptyDocument)
}

func TestUnmarshalRoundTrip(t *testing.T) {
	want := types.NewProduct(`Crate "large" & <heavy>`, 120.5, 0.1, 1e-9)

	data, err := Marshal(want.ToNode(), 4)
	require.NoError(t, err)

	root, err := Unmarshal(data)
	require.NoError(t, err)

	got, err := types.ProductFromNode(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, "product", root.SelectAttrValue("type", ""))
}

func TestRoundTripWhitespaceInName(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "cr\r\nx", ref: "&#xD;&#xA;"},
		{name: "a\nb", ref: "&#xA;"},
		{name: "tab\there", ref: "&#x9;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := types.NewProduct(tt.name, 1, 2, 3)

			data, err := Marshal(want.ToNode(), 2)
			require.NoError(t, err)
			assert.Contains(t, string(data), tt.ref)

			root, err := Unmarshal(data)
			require.NoError(t, err)
			got, err := types.ProductFromNode(root)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestMarshalRejectsUnencodableName(t *testing.T) {
	tests := []string{"bad\xffutf", "ctl\x01", "nul\x00"}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Encode(&buf, types.NewProduct(name, 1, 1, 1).ToNode(), Compact)
			assert.ErrorIs(t, err, types.ErrInvalidAttribute)
			assert.Zero(t, buf.Len())
		})
	}
}

func TestWriteFileRejectsUnencodableName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.xml")

	err := WriteFile(path, types.NewProduct("bad\xffutf", 1, 1, 1).ToNode(), Compact)
	assert.ErrorIs(t, err, types.ErrInvalidAttribute)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestUnmarshalErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{name: "empty input", data: "", wantErr: ErrEmptyDocument},
		{name: "declaration only", data: `<?xml version="1.0"?>`, wantErr: ErrEmptyDocument},
		{name: "malformed attribute", data: `<instance name=a/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := Unmarshal([]byte(tt.data))
			require.Error(t, err)
			assert.Nil(t, root)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeStream(t *testing.T) {
	var buf bytes.Buffer
	want := types.NewProduct("stream", 1, 2, 3)

	require.NoError(t, Encode(&buf, want.ToNode(), Compact))

	root, err := Decode(&buf)
	require.NoError(t, err)
	got, err := types.ProductFromNode(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteFileReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "box.xml")
	want := types.NewProduct("Box-A", 2, 3, 4)

	require.NoError(t, WriteFile(path, want.ToNode(), 2))

	root, err := ReadFile(path)
	require.NoError(t, err)
	got, err := types.ProductFromNode(root)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "box.xml", entries[0].Name())
}

func TestWriteFileReplacesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "box.xml")

	require.NoError(t, WriteFile(path, types.NewProduct("first", 1, 1, 1).ToNode(), Compact))
	require.NoError(t, WriteFile(path, types.NewProduct("second", 2, 2, 2).ToNode(), Compact))

	root, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", root.SelectAttrValue("name", ""))
}

func TestWriteFileMissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "box.xml")

	err := WriteFile(path, types.NewProduct("a", 1, 1, 1).ToNode(), Compact)
	assert.Error(t, err)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "nope.xml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
