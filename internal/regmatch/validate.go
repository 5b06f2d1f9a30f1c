// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regmatch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/privacy-scan/internal/oracle"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

const validateSystemPrompt = `You are a legal expert analyzing whether specific machine learning features are regulated by privacy and data protection laws.

Your task is to determine if a specific feature mentioned in a research paper is actually regulated according to the provided regulatory text.

Respond with exactly one of these regulation statuses:
- "Regulated": The feature is clearly covered by the regulation either because the whole attribute class is mentioned to be regulated or this exact feature.
- "Not Regulated": The feature is not mentioned to be regulated neither its whole attribute class.

Also provide a confidence level: "High", "Medium", or "Low"

Format your response as:
STATUS: [Regulated|Not Regulated]
CONFIDENCE: [High|Medium|Low]
RATIONALE: [Brief explanation of your reasoning]`

// Validator runs the per-pair regulation verdict oracle.
type Validator struct {
	Backend oracle.Backend
	Cfg     types.MatchConfig
	W       io.Writer
}

// Validate appends the oracle's verdict to every pair. A failed call or
// an unparseable response records the Not Clearly Regulated / Low
// sentinel for that pair; the batch always completes.
func (v *Validator) Validate(ctx context.Context, pairs []types.FeatureRegulationPair) ([]types.ValidatedPair, error) {
	validated := make([]types.ValidatedPair, 0, len(pairs))
	for _, pair := range pairs {
		quotes, _ := json.Marshal(pair.QuotedText)
		user := fmt.Sprintf(`FEATURE TO VALIDATE: %s
FEATURE ATTRIBUTE CLASS: %s
Notes: %s

REGULATORY CONTEXT:
REGULATORY TEXT:
%s

QUESTION: Is the feature %q regulated either specifically or its whole category %s,
 according to this regulatory context?
`, pair.Name, pair.AttributeClass, pair.Notes, quotes, pair.Name, pair.AttributeClass)

		vp := types.ValidatedPair{FeatureRegulationPair: pair}

		resp, err := oracle.CallWithRetry(ctx, v.Backend, oracle.Request{
			System:    validateSystemPrompt,
			User:      user,
			MaxTokens: 200,
		}, v.Cfg.MaxRetries)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			fmt.Fprintf(v.W, "warning: verdict for %q under %s: %v\n", pair.Name, pair.RegID, err)
			vp.RegulationStatus = types.StatusUnclear
			vp.Confidence = types.ConfidenceLow
			vp.ValidationRationale = fmt.Sprintf("oracle error: %v", err)
		} else {
			vp.RegulationStatus, vp.Confidence, vp.ValidationRationale = parseVerdict(resp)
		}
		validated = append(validated, vp)

		if err := oracle.Pause(ctx, v.Cfg.RequestDelay); err != nil {
			return nil, err
		}
	}
	return validated, nil
}

// parseVerdict scans the response for the STATUS/CONFIDENCE/RATIONALE
// lines. Any line that is missing keeps its sentinel default, so a
// half-formed response degrades instead of failing.
func parseVerdict(resp string) (status, confidence, rationale string) {
	status = types.StatusUnclear
	confidence = types.ConfidenceLow
	rationale = "Unable to parse oracle response"

	for _, line := range strings.Split(resp, "\n") {
		switch {
		case strings.HasPrefix(line, "STATUS:"):
			status = strings.TrimSpace(strings.TrimPrefix(line, "STATUS:"))
		case strings.HasPrefix(line, "CONFIDENCE:"):
			confidence = strings.TrimSpace(strings.TrimPrefix(line, "CONFIDENCE:"))
		case strings.HasPrefix(line, "RATIONALE:"):
			rationale = strings.TrimSpace(strings.TrimPrefix(line, "RATIONALE:"))
		}
	}
	return status, confidence, rationale
}
