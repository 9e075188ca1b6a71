package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/auction-browser/cmd/subastas/cmd"
)

func TestGenerate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format   string
		wantFile string
	}{
		{format: "markdown", wantFile: "subastas_auctions_list.md"},
		{format: "man", wantFile: "subastas-auctions-list.1"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			root := cmd.Root()
			root.DisableAutoGenTag = true

			require.NoError(t, generate(root, tt.format, dir))

			_, err := os.Stat(filepath.Join(dir, tt.wantFile))
			assert.NoError(t, err)
		})
	}
}

func TestGenerate_UnknownFormat(t *testing.T) {
	t.Parallel()

	err := generate(cmd.Root(), "html", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}
