package main

import (
	"errors"
	"maps"
	"slices"
	"strings"

	domainerrors "github.com/shelfpost/linkcheck/internal/errors"
)

// formatError expands validation details into one line per field.
func formatError(err error) string {
	var domainErr *domainerrors.Error
	if !errors.As(err, &domainErr) {
		return err.Error()
	}
	details, ok := domainErr.Details.(map[string]string)
	if !ok || len(details) == 0 {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(err.Error())
	for _, field := range slices.Sorted(maps.Keys(details)) {
		b.WriteString("\n  ")
		b.WriteString(field)
		b.WriteString(": ")
		b.WriteString(details[field])
	}
	return b.String()
}
