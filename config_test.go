package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".memefloatrc")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config := loadConfigFrom(filepath.Join(t.TempDir(), "nope"), "")
	assert.Equal(t, defaultConfig(), config)
}

func TestLoadConfigValues(t *testing.T) {
	home := t.TempDir()
	path := writeConfig(t, `
# memefloat settings
savedirectory = ~/memes
confirmations = false
exportscale = 3
fps = 60
maxspeed = 2.5
margin = 0
placementattempts = 10
repulsion = false
recolor = false
segmentation = chars
seed = Hello, , world
unknown = whatever
`)

	config := loadConfigFrom(path, home)
	assert.Equal(t, filepath.Join(home, "memes"), config.SaveDirectory)
	assert.False(t, config.Confirmations)
	assert.Equal(t, 3.0, config.ExportScale)
	assert.Equal(t, 60, config.FPS)
	assert.Equal(t, 2.5, config.MaxSpeed)
	assert.Equal(t, 0.0, config.Margin)
	assert.Equal(t, 10, config.PlacementAttempts)
	assert.False(t, config.Repulsion)
	assert.False(t, config.RecolorOnBounce)
	assert.Equal(t, SegmentChars, config.Segmentation)
	assert.Equal(t, []string{"Hello", "world"}, config.Seed)
}

func TestLoadConfigInvalidValuesKeepDefaults(t *testing.T) {
	path := writeConfig(t, `
exportscale = -1
fps = fast
maxspeed = 0
margin = -3
placementattempts = 0
segmentation = paragraphs
no equals sign here
`)

	assert.Equal(t, defaultConfig(), loadConfigFrom(path, ""))
}

func TestGetSavePath(t *testing.T) {
	config := defaultConfig()
	assert.Equal(t, "meme.png", config.GetSavePath("meme.png"))

	dir := filepath.Join(t.TempDir(), "out")
	config.SaveDirectory = dir
	assert.Equal(t, filepath.Join(dir, "meme.png"), config.GetSavePath("meme.png"))
	assert.DirExists(t, dir)
}
