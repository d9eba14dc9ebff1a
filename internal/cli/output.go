package cli

import (
	"fmt"
	"io"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
)

const restockNoticeFormat = "Note: '%s' is at or below its reorder level (quantity %d, reorder level %d).\n"

func printInventory(w io.Writer, inventory domain.Inventory) {
	fmt.Fprintln(w, "Current Inventory:")
	if len(inventory) == 0 {
		fmt.Fprintln(w, "No items in inventory.")
		return
	}
	for _, item := range inventory {
		fmt.Fprintf(w, "%s: Quantity = %d, Reorder Level = %d\n", item.Name, item.Quantity, item.ReorderLevel)
	}
}

func printRestockAlert(w io.Writer, names []string) {
	if len(names) == 0 {
		fmt.Fprintln(w, "No items need restocking at the moment.")
		fmt.Fprintln(w, "All items are above reorder thresholds.")
		return
	}
	fmt.Fprintln(w, "ALERT: These items need restocking:")
	for _, name := range names {
		fmt.Fprintf(w, "- %s\n", name)
	}
}

func printAdded(w io.Writer, item domain.InventoryItem) {
	fmt.Fprintf(w, "Item '%s' added successfully to the inventory.\n", item.Name)
}

func printAdjusted(w io.Writer, item domain.InventoryItem) {
	fmt.Fprintf(w, "Updated %s: New quantity = %d\n", item.Name, item.Quantity)
}
