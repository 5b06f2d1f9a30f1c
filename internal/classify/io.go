// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"path/filepath"
	"strconv"

	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// FilterRelevant returns the papers the relevance gate passed.
func FilterRelevant(papers []Paper) []Paper {
	var kept []Paper
	for _, p := range papers {
		if p.Relevance == LabelRelevant {
			kept = append(kept, p)
		}
	}
	return kept
}

var paperColumns = []string{
	"title", "author", "year", "venue", "doi", "source", "domain",
	"abstract", "publisher", "language", "type", "url", "cited_by",
	"decision_trees_related", "domain_validated", "features", "evidence",
	"feature_validation",
}

func paperRow(p Paper) []string {
	year := ""
	if p.Year != 0 {
		year = strconv.Itoa(p.Year)
	}
	return []string{
		p.Title, p.Author, year, p.Venue, p.DOI, string(p.Source), p.Domain,
		p.Abstract, p.Publisher, p.Language, p.Type, p.URL,
		strconv.Itoa(p.CitedBy),
		p.Relevance, p.DomainValidated, p.Features, p.Evidence,
		p.FeatureValidation,
	}
}

// WriteRelevanceSnapshot publishes the relevance-annotated corpus.
func WriteRelevanceSnapshot(papers []Paper, processedDir string) error {
	return artifact.WriteJSON(filepath.Join(processedDir, "merged_classified_decision_trees_related.json"), papers)
}

// WriteDomainSnapshots publishes the domain-validated paper set as JSON
// and CSV.
func WriteDomainSnapshots(papers []Paper, processedDir string) error {
	if err := artifact.WriteJSON(filepath.Join(processedDir, "merged_domain_validated.json"), papers); err != nil {
		return err
	}
	return writePaperCSV(filepath.Join(processedDir, "merged_domain_validated.csv"), papers)
}

// WriteFeatureSnapshots publishes the feature-validated paper set as JSON
// and CSV.
func WriteFeatureSnapshots(papers []Paper, processedDir string) error {
	if err := artifact.WriteJSON(filepath.Join(processedDir, "validated_features.json"), papers); err != nil {
		return err
	}
	return writePaperCSV(filepath.Join(processedDir, "validated_features.csv"), papers)
}

func writePaperCSV(path string, papers []Paper) error {
	rows := make([][]string, 0, len(papers))
	for _, p := range papers {
		rows = append(rows, paperRow(p))
	}
	return artifact.WriteCSV(path, paperColumns, rows)
}

// WriteAttributeSnapshots publishes the classified feature rows as JSON
// and CSV.
func WriteAttributeSnapshots(feats []types.Feature, processedDir string) error {
	if err := artifact.WriteJSON(filepath.Join(processedDir, "attribute_classes.json"), feats); err != nil {
		return err
	}
	rows := make([][]string, 0, len(feats))
	for _, f := range feats {
		rows = append(rows, []string{
			f.Name, f.Title, f.Abstract, f.DOI, f.Domain,
			string(f.AttributeClass), f.Notes,
		})
	}
	return artifact.WriteCSV(filepath.Join(processedDir, "attribute_classes.csv"),
		[]string{"feature_clean", "title", "abstract", "doi", "domain_validated", "attribute_class", "notes"}, rows)
}

// LoadFeatures reads a classified feature snapshot.
func LoadFeatures(path string) ([]types.Feature, error) {
	var feats []types.Feature
	if err := artifact.ReadJSON(path, &feats); err != nil {
		return nil, err
	}
	return feats, nil
}
