// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regmatch

import (
	"strings"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

// FilterRegulated retains only the pairs the oracle judged Regulated
// with High confidence. Both labels are compared exactly after trimming
// surrounding whitespace; the sentinel verdicts never pass.
func FilterRegulated(pairs []types.ValidatedPair) []types.ValidatedPair {
	var kept []types.ValidatedPair
	for _, p := range pairs {
		if strings.TrimSpace(p.RegulationStatus) == types.StatusRegulated &&
			strings.TrimSpace(p.Confidence) == types.ConfidenceHigh {
			kept = append(kept, p)
		}
	}
	return kept
}
