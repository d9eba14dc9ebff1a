package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
	"github.com/DaDevFox/task-systems/restock-core/internal/logging"
)

const menuText = `
Inventory Restocking System
1. List Inventory
2. Add New Item
3. Purchase Items
4. Use Items
5. Generate Restocking List
6. Exit
`

const exitMessage = "Exiting the Inventory System."

func newMenuCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Run the interactive numbered menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMenu(cmd, opts)
		},
	}
}

func runMenu(cmd *cobra.Command, opts *RootOptions) error {
	m := &menu{
		ctx:  cmd.Context(),
		cmd:  cmd,
		opts: opts,
		in:   bufio.NewScanner(cmd.InOrStdin()),
		out:  cmd.OutOrStdout(),
	}
	return m.run()
}

// menu reads one line per prompt. Every action reports its own errors and
// returns to the menu; only end of input or option 6 leaves the loop.
type menu struct {
	ctx  context.Context
	cmd  *cobra.Command
	opts *RootOptions
	in   *bufio.Scanner
	out  io.Writer
}

func (m *menu) run() error {
	for {
		fmt.Fprint(m.out, menuText)

		choice, err := m.prompt("\nChoose an option (1-6): ")
		if err != nil {
			return m.exit(err)
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.listInventory()
		case "2":
			err = m.addItem()
		case "3":
			err = m.adjust("purchase", m.opts.service.Purchase)
		case "4":
			err = m.adjust("use", m.opts.service.Use)
		case "5":
			err = m.restockAlert()
		case "6":
			fmt.Fprintln(m.out, exitMessage)
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please choose an option (1-6).")
		}

		if errors.Is(err, io.EOF) {
			return m.exit(err)
		}
		if err != nil {
			fmt.Fprintf(m.out, "Error: %v\n", err)
		}
	}
}

// exit ends the loop on end of input; read failures are returned.
func (m *menu) exit(err error) error {
	if !errors.Is(err, io.EOF) {
		return err
	}
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, exitMessage)
	return nil
}

func (m *menu) prompt(text string) (string, error) {
	fmt.Fprint(m.out, text)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return m.in.Text(), nil
}

func (m *menu) promptInt(text string) (int, error) {
	raw, err := m.prompt(text)
	if err != nil {
		return 0, err
	}
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: please enter a whole number", strings.TrimSpace(raw))
	}
	return value, nil
}

func (m *menu) listInventory() error {
	inventory, err := m.opts.service.ListItems(m.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	printInventory(m.out, inventory)
	return nil
}

func (m *menu) addItem() error {
	name, err := m.prompt("Enter the name of the new item: ")
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	qty, err := m.promptInt(fmt.Sprintf("Enter the initial quantity of %s: ", name))
	if err != nil {
		return err
	}
	reorderLevel, err := m.promptInt(fmt.Sprintf("Enter the reorder level for %s: ", name))
	if err != nil {
		return err
	}

	item, err := m.opts.service.AddItem(m.ctx, name, qty, reorderLevel)
	if err != nil {
		return err
	}
	printAdded(m.out, item)
	return nil
}

type adjustFunc func(ctx context.Context, name string, amount int) (domain.InventoryItem, error)

func (m *menu) adjust(verb string, apply adjustFunc) error {
	name, err := m.prompt(fmt.Sprintf("Enter the item name to %s: ", verb))
	if err != nil {
		return err
	}
	name = strings.TrimSpace(name)

	if name == "" && m.opts.Interactive() {
		name, err = m.opts.pickItem(m.cmd)
		if err != nil {
			return err
		}
		logging.WithField("item", name).Debug("item picked")
	}

	qty, err := m.promptInt(fmt.Sprintf("Enter the quantity to %s for %s: ", verb, name))
	if err != nil {
		return err
	}

	item, err := apply(m.ctx, name, qty)
	if err != nil {
		return err
	}
	printAdjusted(m.out, item)
	m.opts.flushNotices(m.out)
	return nil
}

func (m *menu) restockAlert() error {
	names, err := m.opts.service.ItemsBelowThreshold(m.ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out)
	printRestockAlert(m.out, names)
	return nil
}
