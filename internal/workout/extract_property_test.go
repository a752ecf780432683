package workout

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestCleanFieldValue_Idempotent verifies cleaning twice equals cleaning once.
func TestCleanFieldValue_Idempotent(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cleaning is idempotent", prop.ForAll(
		func(s string) bool {
			once := CleanFieldValue(s)
			return CleanFieldValue(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// TestCleanFieldValue_RemovesMisreadGlyph verifies the glyph never survives
// cleaning, wherever it lands in the string.
func TestCleanFieldValue_RemovesMisreadGlyph(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cleaned output never contains the misread glyph", prop.ForAll(
		func(prefix, suffix string) bool {
			cleaned := CleanFieldValue(prefix + misreadGlyph + suffix)
			return !strings.Contains(cleaned, misreadGlyph)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestCleanFieldValue_NoLeadingTrailingSpace verifies trimming.
func TestCleanFieldValue_NoLeadingTrailingSpace(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("cleaned output has no surrounding whitespace", prop.ForAll(
		func(s string) bool {
			cleaned := CleanFieldValue(s)
			return cleaned == strings.TrimSpace(cleaned)
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
