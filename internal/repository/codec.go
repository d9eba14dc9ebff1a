package repository

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/DaDevFox/task-systems/restock-core/internal/domain"
)

const (
	// Header is the first line of every inventory file
	Header = "name, qty, reorder_level"

	fieldSeparator = ", "
	fieldCount     = 3
)

// Decode parses inventory rows. The first line is the header and is skipped;
// blank lines are ignored.
func Decode(r io.Reader) (domain.Inventory, error) {
	inventory := domain.Inventory{}
	scanner := bufio.NewScanner(r)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo == 1 {
			continue
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		item, err := decodeRow(lineNo, line)
		if err != nil {
			return nil, err
		}

		if inventory.Find(item.Name) >= 0 {
			return nil, &domain.ParseError{Line: lineNo, Row: line, Reason: fmt.Sprintf("duplicate item name %q", item.Name)}
		}
		inventory = append(inventory, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read inventory data")
	}

	return inventory, nil
}

func decodeRow(lineNo int, line string) (domain.InventoryItem, error) {
	fields := strings.Split(line, fieldSeparator)
	if len(fields) != fieldCount {
		return domain.InventoryItem{}, &domain.ParseError{
			Line:   lineNo,
			Row:    line,
			Reason: fmt.Sprintf("expected %d fields, got %d", fieldCount, len(fields)),
		}
	}

	name := fields[0]
	if err := domain.ValidateItemName(name); err != nil {
		return domain.InventoryItem{}, &domain.ParseError{Line: lineNo, Row: line, Reason: err.Error()}
	}

	qty, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return domain.InventoryItem{}, &domain.ParseError{Line: lineNo, Row: line, Reason: "quantity is not an integer"}
	}
	if qty < 0 {
		return domain.InventoryItem{}, &domain.ParseError{Line: lineNo, Row: line, Reason: "quantity is negative"}
	}

	reorderLevel, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return domain.InventoryItem{}, &domain.ParseError{Line: lineNo, Row: line, Reason: "reorder level is not an integer"}
	}

	return domain.InventoryItem{Name: name, Quantity: qty, ReorderLevel: reorderLevel}, nil
}

// Encode writes the header followed by one row per item. Items that could not
// be read back by Decode are rejected before anything is written.
func Encode(w io.Writer, inventory domain.Inventory) error {
	for _, item := range inventory {
		if err := domain.ValidateItemName(item.Name); err != nil {
			return errors.Wrapf(err, "cannot encode item %q", item.Name)
		}
		if err := domain.ValidateQuantity(item.Quantity); err != nil {
			return errors.Wrapf(err, "cannot encode item %q", item.Name)
		}
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	for _, item := range inventory {
		if _, err := fmt.Fprintf(bw, "%s%s%d%s%d\n", item.Name, fieldSeparator, item.Quantity, fieldSeparator, item.ReorderLevel); err != nil {
			return errors.Wrapf(err, "failed to write item %q", item.Name)
		}
	}

	return errors.Wrap(bw.Flush(), "failed to flush inventory data")
}
