// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regmatch

import (
	"encoding/json"
	"path/filepath"

	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// LoadClauses reads a tagged clause snapshot.
func LoadClauses(path string) ([]types.Clause, error) {
	var clauses []types.Clause
	if err := artifact.ReadJSON(path, &clauses); err != nil {
		return nil, err
	}
	return clauses, nil
}

// LoadValidated reads a validated pair snapshot.
func LoadValidated(path string) ([]types.ValidatedPair, error) {
	var pairs []types.ValidatedPair
	if err := artifact.ReadJSON(path, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

var validatedColumns = []string{
	"feature_clean", "attribute_class", "title", "abstract", "doi",
	"domain_validated", "reg_id", "article_ref", "quoted_text",
	"regulation_status", "confidence", "validation_rationale",
}

// WriteValidatedSnapshots publishes the validated pairs as JSON and CSV.
// The nested quoted_text mapping is embedded in the CSV as JSON text.
func WriteValidatedSnapshots(pairs []types.ValidatedPair, processedDir string) error {
	if err := artifact.WriteJSON(filepath.Join(processedDir, "validated_feature_regulation.json"), pairs); err != nil {
		return err
	}

	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		quotes, err := json.Marshal(p.QuotedText)
		if err != nil {
			return err
		}
		rows = append(rows, []string{
			p.Name, string(p.AttributeClass), p.Title, p.Abstract, p.DOI,
			p.Domain, p.RegID, p.ArticleRef, string(quotes),
			p.RegulationStatus, p.Confidence, p.ValidationRationale,
		})
	}
	return artifact.WriteCSV(filepath.Join(processedDir, "validated_feature_regulation.csv"), validatedColumns, rows)
}

// WriteFilteredSnapshot publishes the Regulated/High subset.
func WriteFilteredSnapshot(pairs []types.ValidatedPair, processedDir string) error {
	return artifact.WriteJSON(filepath.Join(processedDir, "validated_feature_regulation_regulated.json"), pairs)
}
