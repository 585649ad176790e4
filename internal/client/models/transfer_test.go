package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectedFile_Validate(t *testing.T) {
	f := &SelectedFile{Name: "report.pdf", Size: 10 * 1024 * 1024}
	require.NoError(t, f.Validate())

	f = &SelectedFile{Name: "huge.iso", Size: MaxFileSize + 1}
	require.ErrorIs(t, f.Validate(), ErrFileTooLarge)

	f = &SelectedFile{Name: "edge.bin", Size: MaxFileSize}
	require.NoError(t, f.Validate())
}

func TestSelectedFile_DisplayName(t *testing.T) {
	short := &SelectedFile{Name: "notes.txt"}
	assert.Equal(t, "notes.txt", short.DisplayName())

	long := &SelectedFile{Name: strings.Repeat("a", 80) + ".txt"}
	got := long.DisplayName()
	assert.Len(t, []rune(got), 60)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "abc", TruncateName("abc", 14))
	assert.Equal(t, strings.Repeat("x", 11)+"...", TruncateName(strings.Repeat("x", 20), 14))
}

func TestExpireOption(t *testing.T) {
	assert.True(t, Expire1Hour.Valid())
	assert.False(t, ExpireOption(7).Valid())
	assert.Equal(t, "12 hours", Expire12Hours.Label())
	assert.Equal(t, "unknown", ExpireOption(-1).Label())
}
