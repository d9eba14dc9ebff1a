package cli

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the current inventory",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			inventory, err := opts.service.ListItems(cmd.Context())
			if err != nil {
				return err
			}
			printInventory(cmd.OutOrStdout(), inventory)
			return nil
		},
	}
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	var qty, reorderLevel int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new item to the inventory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := opts.service.AddItem(cmd.Context(), args[0], qty, reorderLevel)
			if err != nil {
				return err
			}
			printAdded(cmd.OutOrStdout(), item)
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 0, "initial quantity")
	cmd.Flags().IntVarP(&reorderLevel, "reorder-level", "r", 0, "quantity at or below which the item needs restocking")
	_ = cmd.MarkFlagRequired("qty")
	_ = cmd.MarkFlagRequired("reorder-level")

	return cmd
}

func newPurchaseCommand(opts *RootOptions) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "purchase [name]",
		Short: "Record purchased stock for an item",
		Long:  "Record purchased stock for an item. Without a name, pick the item interactively.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := opts.resolveItemName(cmd, args)
			if err != nil {
				return err
			}
			item, err := opts.service.Purchase(cmd.Context(), name, qty)
			if err != nil {
				return err
			}
			printAdjusted(cmd.OutOrStdout(), item)
			opts.flushNotices(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 0, "quantity purchased")
	_ = cmd.MarkFlagRequired("qty")

	return cmd
}

func newUseCommand(opts *RootOptions) *cobra.Command {
	var qty int

	cmd := &cobra.Command{
		Use:   "use [name]",
		Short: "Record stock used from an item",
		Long:  "Record stock used from an item. Without a name, pick the item interactively.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := opts.resolveItemName(cmd, args)
			if err != nil {
				return err
			}
			item, err := opts.service.Use(cmd.Context(), name, qty)
			if err != nil {
				return err
			}
			printAdjusted(cmd.OutOrStdout(), item)
			opts.flushNotices(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().IntVarP(&qty, "qty", "q", 0, "quantity used")
	_ = cmd.MarkFlagRequired("qty")

	return cmd
}

func newCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "check",
		Aliases: []string{"alert"},
		Short:   "List items at or below their reorder level",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := opts.service.ItemsBelowThreshold(cmd.Context())
			if err != nil {
				return err
			}
			printRestockAlert(cmd.OutOrStdout(), names)
			return nil
		},
	}
}

// resolveItemName returns the name argument, or asks the picker when none was
// given and the session is interactive.
func (o *RootOptions) resolveItemName(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !o.Interactive() {
		return "", errors.New("item name is required")
	}
	return o.pickItem(cmd)
}

func (o *RootOptions) pickItem(cmd *cobra.Command) (string, error) {
	inventory, err := o.service.ListItems(cmd.Context())
	if err != nil {
		return "", err
	}
	if len(inventory) == 0 {
		return "", errors.New("inventory is empty")
	}
	return o.Picker.Pick(inventory.Names())
}
