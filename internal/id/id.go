// Package id generates prefixed identifiers for stored entities and reports.
package id

import (
	"fmt"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for the entities this service stores.
const (
	PrefixSubmission = "sub"
)

// Generate creates a prefixed NanoID, e.g. "sub-V1StGXR8_Z5jdHi6B-myT".
// It fails only when the system has no entropy available.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics on failure.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// NewReportID returns a random UUID identifying one link health check.
// Reports are never stored, so they carry no prefix.
func NewReportID() string {
	return uuid.NewString()
}
