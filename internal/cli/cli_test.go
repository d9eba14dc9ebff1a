package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DaDevFox/task-systems/restock-core/internal/config"
	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
)

const seedFile = "name, qty, reorder_level\nPaper Towels, 12, 4\nCoffee, 0, 2\nDish Soap, 3, 3\n"

type stubPicker struct {
	choice  string
	err     error
	offered []string
}

func (p *stubPicker) Pick(names []string) (string, error) {
	p.offered = names
	return p.choice, p.err
}

type testEnv struct {
	t          *testing.T
	file       string
	configPath string
	picker     *stubPicker
	tty        bool
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv(config.EnvInventoryFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvLogFormat, "")

	dir := t.TempDir()
	return &testEnv{
		t:          t,
		file:       filepath.Join(dir, "inventory.txt"),
		configPath: filepath.Join(dir, "config.json"),
		picker:     &stubPicker{},
	}
}

func (e *testEnv) seed() *testEnv {
	require.NoError(e.t, os.WriteFile(e.file, []byte(seedFile), 0644))
	return e
}

// run executes the CLI with --file and --config pointing into the test dir
func (e *testEnv) run(stdin string, args ...string) (string, error) {
	opts := &RootOptions{
		Picker:      e.picker,
		Interactive: func() bool { return e.tty },
	}
	cmd := newRootCommand(opts)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--file", e.file, "--config", e.configPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func (e *testEnv) fileContents() string {
	data, err := os.ReadFile(e.file)
	require.NoError(e.t, err)
	return string(data)
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "restock", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"list", "add", "purchase", "use", "check", "menu", "config"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	fileFlag := cmd.PersistentFlags().Lookup("file")
	require.NotNil(t, fileFlag)
	assert.Equal(t, "f", fileFlag.Shorthand)

	for _, name := range []string{"config", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %s", name)
	}
}

func TestListCommand(t *testing.T) {
	env := newTestEnv(t).seed()

	out, err := env.run("", "list")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "list", []byte(out))
}

func TestListCommandEmptyInventory(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "list")
	require.NoError(t, err)
	assert.Equal(t, "Current Inventory:\nNo items in inventory.\n", out)
	assert.NoFileExists(t, env.file, "listing must not create the file")
}

func TestCheckCommand(t *testing.T) {
	env := newTestEnv(t).seed()

	out, err := env.run("", "check")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "check", []byte(out))
}

func TestCheckCommandNothingToRestock(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("", "add", "Tea", "--qty", "9", "--reorder-level", "1")
	require.NoError(t, err)

	out, err := env.run("", "check")
	require.NoError(t, err)
	assert.Equal(t, "No items need restocking at the moment.\nAll items are above reorder thresholds.\n", out)
}

func TestAddCommand(t *testing.T) {
	env := newTestEnv(t).seed()

	out, err := env.run("", "add", "Tea", "-q", "5", "-r", "2")
	require.NoError(t, err)
	assert.Equal(t, "Item 'Tea' added successfully to the inventory.\n", out)
	assert.Equal(t, seedFile+"Tea, 5, 2\n", env.fileContents())
}

func TestAddCommandRejectsDuplicate(t *testing.T) {
	env := newTestEnv(t).seed()

	_, err := env.run("", "add", "dish soap", "--qty", "1", "--reorder-level", "1")
	var dup *domain.DuplicateItemError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, seedFile, env.fileContents())
}

func TestAddCommandRequiresFlags(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("", "add", "Tea", "--qty", "5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reorder-level")
	assert.NoFileExists(t, env.file)
}

func TestPurchaseAndUseCommands(t *testing.T) {
	env := newTestEnv(t).seed()

	out, err := env.run("", "purchase", "coffee", "--qty", "6")
	require.NoError(t, err)
	assert.Equal(t, "Updated Coffee: New quantity = 6\n", out)

	out, err = env.run("", "use", "Paper Towels", "--qty", "8")
	require.NoError(t, err)
	assert.Equal(t, "Updated Paper Towels: New quantity = 4\n"+
		"Note: 'Paper Towels' is at or below its reorder level (quantity 4, reorder level 4).\n", out)

	assert.Equal(t, "name, qty, reorder_level\nPaper Towels, 4, 4\nCoffee, 6, 2\nDish Soap, 3, 3\n", env.fileContents())
}

func TestUseCommandOverWithdrawal(t *testing.T) {
	env := newTestEnv(t).seed()

	_, err := env.run("", "use", "Dish Soap", "--qty", "4")
	var insufficient *domain.InsufficientQuantityError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 3, insufficient.Available)
	assert.Equal(t, seedFile, env.fileContents())
}

func TestPurchaseCommandRejectsNonPositiveQuantity(t *testing.T) {
	env := newTestEnv(t).seed()

	_, err := env.run("", "purchase", "Coffee", "--qty", "0")
	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, seedFile, env.fileContents())
}

func TestPurchaseWithoutNameNonInteractive(t *testing.T) {
	env := newTestEnv(t).seed()

	_, err := env.run("", "purchase", "--qty", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "item name is required")
}

func TestPurchaseWithoutNameUsesPicker(t *testing.T) {
	env := newTestEnv(t).seed()
	env.tty = true
	env.picker.choice = "Coffee"

	out, err := env.run("", "purchase", "--qty", "3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Paper Towels", "Coffee", "Dish Soap"}, env.picker.offered)
	assert.Contains(t, out, "Updated Coffee: New quantity = 3\n")
}

func TestUseWithoutNamePickerCancelled(t *testing.T) {
	env := newTestEnv(t).seed()
	env.tty = true
	env.picker.err = errSelectionCancelled

	_, err := env.run("", "use", "--qty", "1")
	assert.ErrorIs(t, err, errSelectionCancelled)
	assert.Equal(t, seedFile, env.fileContents())
}

func TestPickerOnEmptyInventory(t *testing.T) {
	env := newTestEnv(t)
	env.tty = true

	_, err := env.run("", "use", "--qty", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inventory is empty")
	assert.Nil(t, env.picker.offered)
}

func TestMalformedFileIsReported(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.file, []byte("name, qty, reorder_level\nCoffee; 3; 1\n"), 0644))

	_, err := env.run("", "list")
	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestMenuSession(t *testing.T) {
	env := newTestEnv(t).seed()

	input := strings.Join([]string{
		"1",
		"2", "Tea", "5", "2",
		"2", "coffee", "1", "4",
		"4", "tea", "3",
		"3", "Ghost", "1",
		"4", "Coffee", "x",
		"4", "Coffee", "1",
		"9",
		"5",
		"6",
	}, "\n") + "\n"

	out, err := env.run(input, "menu")
	require.NoError(t, err)
	newGoldie(t).Assert(t, "menu_session", []byte(out))
	assert.Equal(t, seedFile+"Tea, 2, 2\n", env.fileContents())
}

func TestMenuIsDefaultCommand(t *testing.T) {
	env := newTestEnv(t).seed()

	out, err := env.run("6\n")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, menuText))
	assert.True(t, strings.HasSuffix(out, exitMessage+"\n"))
}

func TestMenuExitsOnEndOfInput(t *testing.T) {
	env := newTestEnv(t).seed()

	out, err := env.run("2\nTea\n", "menu")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "Enter the initial quantity of Tea: \n"+exitMessage+"\n"))
	assert.Equal(t, seedFile, env.fileContents(), "abandoned add must not be saved")
}

func TestMenuUsesPickerForBlankName(t *testing.T) {
	env := newTestEnv(t).seed()
	env.tty = true
	env.picker.choice = "Dish Soap"

	out, err := env.run("3\n\n2\n6\n", "menu")
	require.NoError(t, err)
	assert.Contains(t, out, "Enter the quantity to purchase for Dish Soap: Updated Dish Soap: New quantity = 5\n")
}

func TestConfigSetAndShow(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("", "config", "set", "log_level", "error")
	require.NoError(t, err)
	assert.Equal(t, "Set log_level to error\n", out)

	cfg, err := config.LoadConfig(env.configPath)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
	assert.Equal(t, "inventory.txt", cfg.InventoryFile, "--file must not be persisted")

	out, err = env.run("", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory file: "+env.file+"\n")
	assert.Contains(t, out, "Log level:      error\n")

	_, err = env.run("", "config", "set", "colour", "red")
	assert.Error(t, err)
}

func TestConfigPrecedence(t *testing.T) {
	env := newTestEnv(t)
	fileCfg := config.DefaultConfig()
	fileCfg.InventoryFile = "from-config.txt"
	require.NoError(t, fileCfg.SaveConfig(env.configPath))

	show := func() string {
		cmd := newRootCommand(&RootOptions{Picker: env.picker, Interactive: func() bool { return false }})
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--config", env.configPath, "config", "show"})
		require.NoError(t, cmd.Execute())
		return out.String()
	}

	assert.Contains(t, show(), "Inventory file: from-config.txt\n")

	t.Setenv(config.EnvInventoryFile, "from-env.txt")
	assert.Contains(t, show(), "Inventory file: from-env.txt\n")

	out, err := env.run("", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Inventory file: "+env.file+"\n", "flag wins over environment")
}
