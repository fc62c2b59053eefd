package integration

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/geocine/lokator"
	th "github.com/geocine/lokator/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup_LocalFile_Succeeds(t *testing.T) {
	f := dl.For(t)

	// the shared directory holds a file of the same name; the local one wins
	assert.Equal(t, "local file\n", f.AsString())
	assert.Equal(t, th.IntegrationData("resolution", "LocalFile.txt"), f.AsFilePath())
}

func TestLookup_TypedScenario_Succeeds(t *testing.T) {
	assert.JSONEq(t, `{"scenario": "typed"}`, string(dl.For(t).AsBytes()))
}

func TestLookup_SharedOnly_Succeeds(t *testing.T) {
	assert.Equal(t, th.SharedPath("SharedOnly.txt"), dl.For(t).AsFilePath())
}

func TestLookup_ExplicitName(t *testing.T) {
	assert.Equal(t, "explicitly named\n", dl.For(t).AsStringNamed("explicit-name.csv"))
	assert.Equal(t, "explicitly named\n", dl.For(t).AsStringNamed("explicit-name"))
}

func TestLookup_DefaultFile(t *testing.T) {
	assert.Equal(t, "default file\n", dl.For(t).AsStringUsing(lokator.DefaultFile))
}

func TestLookup_MultiLine_Succeeds(t *testing.T) {
	r := dl.For(t).AsReader()

	first, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "first line\n", first)

	rest, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "second line\n", string(rest))
}

func TestLookup_Missing_Fails(t *testing.T) {
	_, err := dl.Daten(lokator.Caller(t)).AsString()
	require.Error(t, err)

	var nf *lokator.NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, th.IntegrationData("resolution"), nf.Directory)
	assert.Equal(t, "Missing", nf.File)
}

func TestLookup_Subtests(t *testing.T) {
	t.Run("LocalFile", func(t *testing.T) {
		// TestLookup_Subtests/LocalFile -> Lookup_Subtests_LocalFile -> Subtests
		_, err := dl.Daten(lokator.Caller(t)).AsFilePath()
		assert.ErrorIs(t, err, lokator.ErrNotFound)
	})
	t.Run("Named", func(t *testing.T) {
		p := dl.For(t).AsFilePathNamed("LocalFile.txt")
		assert.Equal(t, "LocalFile.txt", filepath.Base(p))
	})
}
