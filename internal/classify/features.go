// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/privacy-scan/internal/oracle"
)

const extractPromptTemplate = `You are building a feature table for decision-tree models. For the paper below, do the following:

1. Identify each **explicit feature (predictor or attribute)** used in the decision-tree described in the following abstract.
   - A feature is a variable or attribute that is explicitly mentioned in the abstract as being used in the decision-tree model.
   - Do not infer or assume features that are not explicitly stated in the abstract.

2. For each feature, locate the **one full sentence** in the abstract that contains the feature name exactly (case-insensitive substring match).
   - The sentence must explicitly mention the feature in the context of the decision-tree model.
   - Do not include multiple sentences or paragraphs as evidence. Only return the single sentence that mentions the feature.

3. IMPORTANT: If no features (predictors or attributes) are explicitly mentioned in the abstract, return an empty list.

Return only this JSON object (no extra text):

{
  "features": [
    {
      "name": "<short feature label, for example \"Age\">",
      "evidence": "<the full quoted sentence from the abstract>"
    }
  ]
}

Paper:
<<<
Title: %s

Venue: %s

Abstract: %s

Domain: %s
>>>`

const validatePromptTemplate = `You are validating features extracted from a paper. For the paper below, validate that the listed features are explicitly mentioned in the abstract as features used as predictors in a decision-tree model.

Return only one of the following responses:
- "Valid" if all the listed features are explicitly mentioned in the abstract as predictors in the decision-tree model.
- "Not valid" if any of the listed features are not explicitly mentioned in the abstract as predictors in the decision-tree model.

Paper:
<<<
Title: %s

Abstract: %s

Features: %s
>>>`

// extractResponse is the strict JSON shape expected from the extraction
// oracle. An empty feature list is a legitimate answer.
type extractResponse struct {
	Features []struct {
		Name     string `json:"name"`
		Evidence string `json:"evidence"`
	} `json:"features"`
}

// ExtractFeatures fills the Features and Evidence columns for every paper
// that is relevant and whose validated domain matches its harvest domain.
// An unparseable or failed response yields an empty feature set with a
// warning, never a batch failure.
func (c *Classifier) ExtractFeatures(ctx context.Context, papers []Paper) error {
	for i := range papers {
		p := &papers[i]
		if p.Relevance != LabelRelevant || p.DomainValidated != p.Domain {
			continue
		}

		system := fmt.Sprintf(extractPromptTemplate,
			orNA(p.Title), orNA(p.Venue), orNA(p.Abstract), orNA(p.Domain))

		resp, err := c.label(ctx, system, "", 1500)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(c.W, "warning: feature extraction for %q: %v\n", clip(p.Title, 30), err)
			continue
		}

		var parsed extractResponse
		if err := json.Unmarshal([]byte(resp), &parsed); err != nil {
			fmt.Fprintf(c.W, "warning: feature extraction for %q: unparseable response\n", clip(p.Title, 30))
			continue
		}

		names := make([]string, 0, len(parsed.Features))
		evidence := make([]string, 0, len(parsed.Features))
		for _, f := range parsed.Features {
			names = append(names, f.Name)
			if f.Evidence == "" {
				evidence = append(evidence, "No evidence provided")
			} else {
				evidence = append(evidence, f.Evidence)
			}
		}
		p.Features = strings.Join(names, "; ")
		p.Evidence = strings.Join(evidence, "; ")

		if err := oracle.Pause(ctx, c.Cfg.RequestDelay); err != nil {
			return err
		}
	}
	return nil
}

// ValidateFeatures records the Valid/Not valid gate for every paper with
// a non-empty feature set.
func (c *Classifier) ValidateFeatures(ctx context.Context, papers []Paper) error {
	for i := range papers {
		p := &papers[i]
		if p.Features == "" {
			continue
		}

		system := fmt.Sprintf(validatePromptTemplate,
			orNA(p.Title), orNA(p.Abstract), p.Features)

		label, err := c.label(ctx, system, "", 10)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(c.W, "warning: feature validation for %q: %v\n", clip(p.Title, 30), err)
			label = LabelError
		case label != LabelValid && label != LabelNotValid:
			fmt.Fprintf(c.W, "warning: feature validation for %q: off-vocabulary %q\n", clip(p.Title, 30), label)
			label = LabelError
		}
		p.FeatureValidation = label

		if err := oracle.Pause(ctx, c.Cfg.RequestDelay); err != nil {
			return err
		}
	}
	return nil
}
