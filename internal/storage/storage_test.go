package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFor(t *testing.T) {
	cases := []struct {
		contentType string
		want        Kind
	}{
		{"image/jpeg", KindImage},
		{"image/png", KindImage},
		{"IMAGE/WEBP", KindImage},
		{"application/pdf", KindDocument},
		{"application/pdf; charset=binary", KindDocument},
		{"video/mp4", KindVideo},
	}
	for _, tc := range cases {
		kind, err := KindFor(tc.contentType)
		require.NoError(t, err, tc.contentType)
		assert.Equal(t, tc.want, kind, tc.contentType)
	}

	for _, bad := range []string{"image/gif", "text/html", "application/x-msdownload", ""} {
		_, err := KindFor(bad)
		assert.Error(t, err, bad)
	}
}

func TestObjectNameKeepsExtension(t *testing.T) {
	name := ObjectName("Catalog Photo.JPG")
	assert.True(t, strings.HasSuffix(name, ".jpg"), name)
	assert.NotContains(t, name, " ")
}

func TestLocalDiskPut(t *testing.T) {
	dir := t.TempDir()
	disk := NewLocalDisk(dir, "/uploads")

	url, err := disk.Put(context.Background(), "2026/09/abc.png", "image/png", strings.NewReader("pixels"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/2026/09/abc.png", url)

	data, err := os.ReadFile(filepath.Join(dir, "2026", "09", "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(data))
}
