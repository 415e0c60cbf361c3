package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	errNoMatch   = errors.New("no match")
	errAmbiguous = errors.New("ambiguous reference")
)

// parsePositive reads a user-supplied amount such as "8,000", "$65.50" or
// "2.25", rejects anything that is not a positive number and rounds to
// places decimals.
func parsePositive(s string, places int32) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSuffix(clean, "h")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	d = d.Round(places)
	if !d.IsPositive() {
		return 0, fmt.Errorf("%q must be greater than zero", s)
	}
	f, _ := d.Float64()
	return f, nil
}

func parseMoney(s string) (float64, error) { return parsePositive(s, 2) }

func parseHours(s string) (float64, error) { return parsePositive(s, 2) }

// resolveRef finds the single item whose ID equals ref, whose ID starts with
// ref, or whose name matches ref case-insensitively, in that order of
// preference.
func resolveRef[T any](items []T, ref string, id, name func(T) string) (T, error) {
	var zero T
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return zero, errNoMatch
	}

	for _, it := range items {
		if id(it) == ref {
			return it, nil
		}
	}

	match := func(pred func(T) bool) (T, int) {
		var found T
		n := 0
		for _, it := range items {
			if pred(it) {
				found = it
				n++
			}
		}
		return found, n
	}

	if it, n := match(func(it T) bool { return strings.HasPrefix(id(it), ref) }); n == 1 {
		return it, nil
	} else if n > 1 {
		return zero, fmt.Errorf("%q: %w (%d IDs share that prefix)", ref, errAmbiguous, n)
	}

	if it, n := match(func(it T) bool { return strings.EqualFold(name(it), ref) }); n == 1 {
		return it, nil
	} else if n > 1 {
		return zero, fmt.Errorf("%q: %w (%d records share that name)", ref, errAmbiguous, n)
	}

	return zero, fmt.Errorf("%q: %w", ref, errNoMatch)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
