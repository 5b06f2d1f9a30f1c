// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/privacy-scan/internal/feature"
	"github.com/pdiddy/privacy-scan/internal/oracle"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

const attributeSystemPrompt = "You are a compliance analyst. Assign each incoming feature name to exactly one " +
	"of these privacy-relevant classes and provide a brief rationale (<=15 words). " +
	"Return only JSON with keys `class` and `rationale`.\n\n" +
	"Classes:\n" +
	"1. Identifier_PII (e.g., SSN, passport number)\n" +
	"2. Contact_Info (e.g., email, phone)\n" +
	"3. Device_OnlineID (e.g., device ID, IP address)\n" +
	"4. Biometric (e.g., fingerprint, face scan)\n" +
	"5. Location_IoT (e.g., GPS, address)\n" +
	"6. Health_Clinical\n" +
	"7. Financial\n" +
	"8. Child_Data (data about minors)\n" +
	"9. Demographic (e.g., age, gender)\n" +
	"10. Behavioural\n" +
	"11. Environmental\n" +
	"12. Operational_Business\n" +
	"13. Other\n\n" +
	`Example response: {"class":"Demographic","rationale":"Age indicates personal attribute that the current context mentions that it should not be disclosed."}`

// classResponse is the strict JSON shape expected from the class oracle.
type classResponse struct {
	Class     string `json:"class"`
	Rationale string `json:"rationale"`
}

// ExpandFeatures explodes validated papers into one sanitized feature row
// per feature name, deduplicated on the full feature-context identity.
func ExpandFeatures(papers []Paper) []types.Feature {
	seen := make(map[string]bool)
	var feats []types.Feature
	for _, p := range papers {
		if p.FeatureValidation != LabelValid {
			continue
		}
		for _, raw := range strings.Split(p.Features, ";") {
			name := feature.SanitizeName(raw)
			if name == "" {
				continue
			}
			f := types.Feature{
				Name:     name,
				Title:    p.Title,
				Abstract: p.Abstract,
				DOI:      p.DOI,
				Domain:   p.DomainValidated,
			}
			key := strings.Join([]string{f.Name, f.Title, f.Abstract, f.DOI, f.Domain}, "\x00")
			if seen[key] {
				continue
			}
			seen[key] = true
			feats = append(feats, f)
		}
	}
	return feats
}

// AssignClasses labels every feature row with one of the fixed attribute
// classes. The vocabulary contributes a hint to the prompt when it knows
// the feature; the oracle's answer always decides. Off-enum classes,
// non-JSON responses, and failed calls all degrade to ClassOther with a
// diagnostic note.
func (c *Classifier) AssignClasses(ctx context.Context, feats []types.Feature, vocab feature.Vocabulary) error {
	for i := range feats {
		f := &feats[i]
		user := fmt.Sprintf("Feature name: %s\nTitle: %s\nAbstract: %s", f.Name, f.Title, f.Abstract)
		if hint := vocab.Hint(f.Name); hint != "" {
			user += fmt.Sprintf("\nVocabulary hint: %s", hint)
		}

		resp, err := c.label(ctx, attributeSystemPrompt, user, 60)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(c.W, "warning: attribute class for %q: %v\n", f.Name, err)
			f.AttributeClass = types.ClassOther
			f.Notes = "oracle error"
			continue
		}

		f.AttributeClass, f.Notes = parseClassVerdict(resp)

		if err := oracle.Pause(ctx, c.Cfg.RequestDelay); err != nil {
			return err
		}
	}
	return nil
}

// parseClassVerdict decodes the oracle's class verdict, degrading to
// ClassOther when the response is not strict JSON or names an unknown
// class.
func parseClassVerdict(resp string) (types.AttributeClass, string) {
	var verdict classResponse
	if err := jsonUnmarshalStrict(resp, &verdict); err != nil {
		return types.ClassOther, clip(resp, 15) + "..."
	}
	cls := strings.TrimSpace(verdict.Class)
	if !types.ValidClass(cls) {
		return types.ClassOther, fmt.Sprintf("Invalid class %q", cls)
	}
	return types.AttributeClass(cls), strings.TrimSpace(verdict.Rationale)
}

// jsonUnmarshalStrict decodes s only when it is a bare JSON object, the
// shape every class verdict must take.
func jsonUnmarshalStrict(s string, v any) error {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") || !strings.HasSuffix(s, "}") {
		return fmt.Errorf("not a JSON object")
	}
	return json.Unmarshal([]byte(s), v)
}
