package integration

import (
	"io"
	"strings"
	"testing"

	"github.com/geocine/lokator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Zipped_Succeeds(t *testing.T) {
	f := dl.For(t)

	p := f.AsFilePath()
	assert.True(t, strings.HasPrefix(p, extractDir), p)
	assert.Equal(t, "zipped at the top level\n", f.AsString())

	// extracting again reuses the file
	assert.Equal(t, p, f.AsFilePath())
}

func TestExtract_Nested_Succeeds(t *testing.T) {
	s := dl.For(t).AsStream()

	content, err := io.ReadAll(s)
	require.NoError(t, err)
	assert.Equal(t, "zipped in the class folder\n", string(content))
}

func TestExtract_Hidden_Fails(t *testing.T) {
	// only the top level and the archived/ folder are searched
	_, err := dl.Daten(lokator.Caller(t)).AsFilePath()
	assert.ErrorIs(t, err, lokator.ErrNotFound)
}
