// Package id generates identifiers for Platelist entities.
package id

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Prefixes for generated IDs.
const (
	PrefixRestaurant = "rest"
	PrefixPlan       = "plan"
)

// planNamespace scopes name-based plan IDs so they never collide with other UUID v5 users.
var planNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://platelist.app/ns/reorder-plan"))

// Generate creates a prefixed unique ID using NanoID
// Format: prefix-nanoid (e.g., "rest-V1StGXR8_Z5jdHi6B-myT")
//
// Returns an error if the system has insufficient entropy for secure random generation.
func Generate(prefix string) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// Deterministic derives a prefixed ID from its inputs (UUID v5).
// The same parts always yield the same ID.
func Deterministic(prefix string, parts ...string) string {
	name := strings.Join(parts, "\x1f")
	return prefix + "-" + uuid.NewSHA1(planNamespace, []byte(name)).String()
}
