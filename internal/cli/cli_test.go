package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/geocine/lokator"
	"github.com/geocine/lokator/fileio"
	"github.com/geocine/lokator/internal/config"
	"github.com/geocine/lokator/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/project"

func project(t *testing.T, files map[string]string) *fileio.AferoFileSystem {
	t.Helper()
	fs := fileio.NewMemory()
	require.NoError(t, fs.WriteAtomic(filepath.Join(root, "go.mod"), []byte("module example.com/project\n"), 0o644))
	for p, content := range files {
		require.NoError(t, fs.WriteAtomic(p, []byte(content), 0o644))
	}
	return fs
}

func TestInit_WritesConfigAndDirectories(t *testing.T) {
	fs := project(t, nil)

	path, err := Init(fs, InitOptions{Root: root, DefaultFile: "Default.json"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "lokator.toml"), path)

	cfg, err := config.LoadFromFile(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "Default.json", cfg.DefaultFile)
	assert.Equal(t, "assert-act-arrange", cfg.Naming)
	assert.Equal(t, "testdata/shared", cfg.SettingsMap()["global-directory"])
	assert.NotContains(t, cfg.SettingsMap(), "assets-directory")

	assert.True(t, fs.DirectoryExists(filepath.Join(root, "testdata")))
	assert.True(t, fs.DirectoryExists(filepath.Join(root, "testdata", "shared")))
}

func TestInit_RefusesToOverwrite(t *testing.T) {
	fs := project(t, map[string]string{"/project/lokator.yaml": "naming: exact"})

	_, err := Init(fs, InitOptions{Root: root})
	assert.ErrorIs(t, err, ErrConfigExists)

	_, err = Init(fs, InitOptions{Root: root, Force: true})
	assert.NoError(t, err)
}

func TestInit_RejectsUnknownNaming(t *testing.T) {
	_, err := Init(project(t, nil), InitOptions{Root: root, Naming: "camel"})
	assert.Error(t, err)
}

func TestFillInitOptionsInteractive(t *testing.T) {
	opts := InitOptions{}
	opts.SetDefaults()

	in := strings.NewReader("fixtures\n\nDefault.txt\nsimple\n")
	var out bytes.Buffer
	FillInitOptionsInteractive(in, &out, &opts)

	assert.Equal(t, "fixtures", opts.AssetsDir)
	assert.Equal(t, "testdata/shared", opts.GlobalDir)
	assert.Equal(t, "Default.txt", opts.DefaultFile)
	assert.Equal(t, "simple", opts.Naming)
	assert.Contains(t, out.String(), "Assets directory [testdata]: ")
}

func TestFillInitOptionsInteractive_NoInput(t *testing.T) {
	opts := InitOptions{}
	opts.SetDefaults()
	want := opts

	FillInitOptionsInteractive(strings.NewReader(""), &bytes.Buffer{}, &opts)
	assert.Equal(t, want, opts)
}

func TestResolve(t *testing.T) {
	fs := project(t, map[string]string{
		"/project/pkg/testdata/order/WhenEmpty.json": "{}",
		"/project/pkg/testdata/order/named.txt":      "named",
		"/project/testdata/Default.txt":              "default",
		"/project/lokator.toml":                      `default-file = "Default.txt"`,
	})
	base := ResolveOptions{Root: root, SourceFile: "/project/pkg/order_test.go"}

	opts := base
	opts.TestName = "TestTotal_WhenEmpty_ReturnsZero"
	got, err := Resolve(fs, opts)
	require.NoError(t, err)
	assert.Equal(t, "/project/pkg/testdata/order/WhenEmpty.json", got)

	opts = base
	opts.Named = "named.txt"
	got, err = Resolve(fs, opts)
	require.NoError(t, err)
	assert.Equal(t, "/project/pkg/testdata/order/named.txt", got)

	opts = base
	opts.Default = true
	got, err = Resolve(fs, opts)
	require.NoError(t, err)
	assert.Equal(t, "/project/testdata/Default.txt", got)

	opts = base
	opts.TestName = "TestTotal_WhenFull_ReturnsSum"
	_, err = Resolve(fs, opts)
	assert.ErrorIs(t, err, lokator.ErrNotFound)

	opts = base
	_, err = Resolve(fs, opts)
	assert.Error(t, err)

	opts = base
	opts.TestName = "x"
	opts.Naming = "camel"
	_, err = Resolve(fs, opts)
	assert.Error(t, err)
}

func TestResolve_SimpleNamingFromArchive(t *testing.T) {
	fs := project(t, nil)
	require.NoError(t, fs.WriteAtomic("/project/pkg/testdata/order.zip", testutil.ZipBytes(t, map[string]string{
		"order/TestTotal.txt": "zipped",
	}), 0o644))

	got, err := Resolve(fs, ResolveOptions{
		Root:       root,
		Naming:     "simple",
		SourceFile: "/project/pkg/order_test.go",
		TestName:   "TestTotal",
		Settings:   map[string]string{"extract-directory": "/tmp/extract"},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "/tmp/extract"))

	content, err := fs.ReadAllText(got)
	require.NoError(t, err)
	assert.Equal(t, "zipped", content)
}

func TestInventory(t *testing.T) {
	fs := project(t, map[string]string{
		"/project/pkg/testdata/order/WhenEmpty.json": "{}",
		"/project/data/shared/Common.txt":            "c",
		"/project/lokator.toml":                      "[settings]\nglobal-directory = \"data/shared\"\n",
	})

	out, inv, err := Inventory(fs, InventoryOptions{Root: root, Format: "yaml"})
	require.NoError(t, err)
	assert.Equal(t, "/project/data/shared", inv.GlobalDirectory)
	assert.Len(t, inv.Locations, 2)
	assert.Contains(t, out, "pkg/testdata/order")
	assert.Contains(t, out, "Common.txt")

	_, _, err = Inventory(fs, InventoryOptions{Root: root, Format: "pdf"})
	assert.Error(t, err)
}

func run(t *testing.T, fs *fileio.AferoFileSystem, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand(fs, "test")
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestCommands(t *testing.T) {
	fs := project(t, map[string]string{
		"/project/pkg/testdata/order/WhenEmpty.json": "{}",
	})

	out, _, err := run(t, fs, "", "resolve", "--root", root, "/project/pkg/order_test.go", "TestTotal_WhenEmpty_ReturnsZero")
	require.NoError(t, err)
	assert.Equal(t, "/project/pkg/testdata/order/WhenEmpty.json\n", out)

	_, _, err = run(t, fs, "", "resolve", "--root", root, "/project/pkg/order_test.go", "TestTotal_Missing_Fails")
	assert.ErrorIs(t, err, lokator.ErrNotFound)

	out, errOut, err := run(t, fs, "", "inventory", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "# Test data inventory")
	assert.Contains(t, errOut, "1 locations, 1 files")

	out, _, err = run(t, fs, "", "init", "--root", root, "--yes", "--default-file", "Default.txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Created /project/lokator.toml")
	assert.True(t, fs.FileExists("/project/lokator.toml"))

	out, _, err = run(t, fs, "\n\n\nsimple\n", "init", "--root", root, "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Naming convention")

	cfg, err := config.LoadFromFile(fs, "/project/lokator.toml")
	require.NoError(t, err)
	assert.Equal(t, "simple", cfg.Naming)
}
