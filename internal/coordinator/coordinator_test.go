package coordinator

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/filemanager"
	"github.com/geocine/lokator/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fileManagerMock struct {
	mock.Mock
}

func (m *fileManagerMock) Setup(root string, settings map[string]string) error {
	args := m.Called(root, settings)
	return args.Error(0)
}

func (m *fileManagerMock) TearDown() error {
	args := m.Called()
	return args.Error(0)
}

func (m *fileManagerMock) GetFilePath(n naming.Strategy, fileName, sourceFile string) (string, error) {
	args := m.Called(n, fileName, sourceFile)
	return args.String(0), args.Error(1)
}

func (m *fileManagerMock) GetDefaultFilePath(defaultFileName string) (string, error) {
	args := m.Called(defaultFileName)
	return args.String(0), args.Error(1)
}

var settings = map[string]string{filemanager.KeyGlobalDirectory: "/shared"}

func TestResolutionBeforeSetupFails(t *testing.T) {
	fm := &fileManagerMock{}
	c := New(naming.Simple{}, fm, settings, "Default.txt", "/project")

	_, err := c.GetFilePath("Method", "/project/a_test.go")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.GetNamedFilePath("file.txt", "/project/a_test.go")
	assert.ErrorIs(t, err, ErrNotInitialized)
	_, err = c.GetDefaultFilePath()
	assert.ErrorIs(t, err, ErrNotInitialized)

	fm.AssertNotCalled(t, "GetFilePath", mock.Anything, mock.Anything, mock.Anything)
	fm.AssertNotCalled(t, "GetDefaultFilePath", mock.Anything)
	assert.Equal(t, Unset, c.State())
}

func TestSetupDelegatesAndEnablesResolution(t *testing.T) {
	fm := &fileManagerMock{}
	fm.On("Setup", "/project", settings).Return(nil).Once()
	fm.On("GetFilePath", naming.Simple{}, "Method", "/project/a_test.go").Return("/project/testdata/a/Method.txt", nil)
	fm.On("GetFilePath", naming.Exact{}, "named.txt", "/project/a_test.go").Return("/project/testdata/a/named.txt", nil)
	fm.On("GetDefaultFilePath", "Default.txt").Return("/project/testdata/Default.txt", nil)

	c := New(naming.Simple{}, fm, settings, "Default.txt", "/project")
	require.NoError(t, c.Setup())
	assert.True(t, c.IsSetup())

	got, err := c.GetFilePath("Method", "/project/a_test.go")
	require.NoError(t, err)
	assert.Equal(t, "/project/testdata/a/Method.txt", got)

	got, err = c.GetNamedFilePath("named.txt", "/project/a_test.go")
	require.NoError(t, err)
	assert.Equal(t, "/project/testdata/a/named.txt", got)

	got, err = c.GetDefaultFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/project/testdata/Default.txt", got)

	fm.AssertExpectations(t)
}

func TestSetupFailureLeavesStateUnchanged(t *testing.T) {
	fm := &fileManagerMock{}
	fm.On("Setup", "/project", settings).Return(errors.New("boom")).Once()

	c := New(naming.Simple{}, fm, settings, "", "/project")
	err := c.Setup()
	require.Error(t, err)
	assert.Equal(t, Unset, c.State())

	_, err = c.GetFilePath("Method", "/project/a_test.go")
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestSetupRequiresStrategies(t *testing.T) {
	c := New(nil, &fileManagerMock{}, nil, "", "/project")
	assert.ErrorIs(t, c.Setup(), ErrNotInitialized)
}

func TestTearDownThenSetupAgain(t *testing.T) {
	fm := &fileManagerMock{}
	fm.On("Setup", "/project", settings).Return(nil).Twice()
	fm.On("TearDown").Return(nil).Once()
	fm.On("GetDefaultFilePath", "").Return("", nil)

	c := New(naming.Simple{}, fm, settings, "", "/project")
	require.NoError(t, c.Setup())
	require.NoError(t, c.TearDown())
	assert.Equal(t, TornDown, c.State())

	_, err := c.GetDefaultFilePath()
	assert.ErrorIs(t, err, ErrNotInitialized)

	// a second teardown is a no-op
	require.NoError(t, c.TearDown())

	require.NoError(t, c.Setup())
	_, err = c.GetDefaultFilePath()
	assert.NoError(t, err)

	fm.AssertExpectations(t)
}

func TestSettingsAreCopied(t *testing.T) {
	fm := &fileManagerMock{}
	input := map[string]string{"k": "v"}
	fm.On("Setup", "/project", map[string]string{"k": "v"}).Return(nil).Once()

	c := New(naming.Simple{}, fm, input, "", "/project")
	input["k"] = "changed"
	require.NoError(t, c.Setup())
	fm.AssertExpectations(t)
}

func TestExpected(t *testing.T) {
	fm := filemanager.NewSimple(fileio.NewMemory())
	c := New(naming.AssertActArrange{}, fm, nil, "Default", "/project")
	require.NoError(t, c.Setup())

	dir, stem := c.Expected("TestParse_ValidHeader_Succeeds", "/project/p/parser_test.go", false)
	assert.Equal(t, filepath.Join("/project", "p", "testdata", "parser"), dir)
	assert.Equal(t, "ValidHeader", stem)

	dir, stem = c.Expected("raw_name.txt", "/project/p/parser_test.go", true)
	assert.Equal(t, filepath.Join("/project", "p", "testdata", "parser"), dir)
	assert.Equal(t, "raw_name.txt", stem)

	dir, stem = c.Expected("Default", "", true)
	assert.Equal(t, filepath.Join("/project", "testdata"), dir)
	assert.Equal(t, "Default", stem)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "unset", Unset.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "torn down", TornDown.String())
}
