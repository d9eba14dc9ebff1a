package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DaDevFox/task-systems/restock-core/internal/config"
	"github.com/DaDevFox/task-systems/restock-core/internal/events"
	"github.com/DaDevFox/task-systems/restock-core/internal/logging"
	"github.com/DaDevFox/task-systems/restock-core/internal/repository"
	"github.com/DaDevFox/task-systems/restock-core/internal/service"
)

// RootOptions holds global flags and the state shared by all commands.
type RootOptions struct {
	ConfigPath    string
	InventoryFile string
	LogLevel      string
	LogFormat     string

	// Picker selects an item when a command is run without a name.
	Picker ItemPicker
	// Interactive reports whether the picker may be used.
	Interactive func() bool

	configPath string
	cfg        *config.Config
	service    *service.InventoryService
	notices    []string
}

// NewRootCommand creates the root command for the restock CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	if opts.Picker == nil {
		opts.Picker = fuzzyPicker{}
	}
	if opts.Interactive == nil {
		opts.Interactive = logging.IsInteractive
	}

	cmd := &cobra.Command{
		Use:           "restock",
		Short:         "Inventory restocking tracker",
		Long:          "Track stock levels in a flat text file and flag items at or below their reorder level.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.initialize(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.restock/config.json)")
	cmd.PersistentFlags().StringVarP(&opts.InventoryFile, "file", "f", "", "inventory file (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")

	cmd.AddCommand(newListCommand(opts))
	cmd.AddCommand(newAddCommand(opts))
	cmd.AddCommand(newPurchaseCommand(opts))
	cmd.AddCommand(newUseCommand(opts))
	cmd.AddCommand(newCheckCommand(opts))
	cmd.AddCommand(newMenuCommand(opts))
	cmd.AddCommand(newConfigCommand(opts))

	return cmd
}

// initialize resolves configuration (flag > env > file > default), sets up
// logging and builds the inventory service.
func (o *RootOptions) initialize(cmd *cobra.Command) error {
	o.configPath = o.ConfigPath
	if o.configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			logging.WithError(err).Warn("cannot locate config file, using defaults")
		}
		o.configPath = path
	}

	cfg := config.DefaultConfig()
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			logging.WithError(err).WithField("path", o.configPath).Warn("failed to load config, using defaults")
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	if o.InventoryFile != "" {
		cfg.InventoryFile = o.InventoryFile
	}
	if o.LogLevel != "" {
		cfg.LogLevel = o.LogLevel
	}
	if o.LogFormat != "" {
		cfg.LogFormat = o.LogFormat
	}
	o.cfg = cfg

	logging.SetLevel(cfg.LogLevel)
	logging.SetFormatter(cfg.LogFormat)

	repo, err := repository.NewInventoryRepository(cfg.InventoryFile, repository.StorageTypeFile, logging.Logger)
	if err != nil {
		return errors.Wrap(err, "failed to initialize inventory storage")
	}

	bus := events.NewPubSub(logging.Logger)
	bus.Subscribe(events.EventItemRestockNeeded, func(ctx context.Context, event events.Event) error {
		o.notices = append(o.notices, fmt.Sprintf(restockNoticeFormat, event.ItemName, event.Quantity, event.ReorderLevel))
		return nil
	})

	o.service = service.NewInventoryService(repo, bus, logging.Logger)

	logging.WithFields(logrus.Fields{
		"inventory_file": cfg.InventoryFile,
		"config":         o.configPath,
	}).Debug("cli initialized")

	return nil
}

// flushNotices writes restock notices collected since the last flush
func (o *RootOptions) flushNotices(w io.Writer) {
	for _, notice := range o.notices {
		fmt.Fprint(w, notice)
	}
	o.notices = nil
}
