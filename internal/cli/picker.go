package cli

import (
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/pkg/errors"
)

var errSelectionCancelled = errors.New("item selection cancelled")

// ItemPicker chooses one item name from a list
type ItemPicker interface {
	Pick(names []string) (string, error)
}

// fuzzyPicker shows a full-screen fuzzy finder on the terminal
type fuzzyPicker struct{}

func (fuzzyPicker) Pick(names []string) (string, error) {
	idx, err := fuzzyfinder.Find(
		names,
		func(i int) string { return names[i] },
		fuzzyfinder.WithPromptString("item> "),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return "", errSelectionCancelled
		}
		return "", errors.Wrap(err, "item selection failed")
	}
	return names[idx], nil
}
