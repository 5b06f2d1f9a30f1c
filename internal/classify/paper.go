// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify runs the oracle classification stages over the merged
// corpus: relevance gating, domain assignment, feature extraction and
// validation, and attribute-class labelling.
// See docs/ARCHITECTURE § Classification Stages.
package classify

import (
	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// Paper is a corpus record with the classification annotations the stages
// accumulate. Each stage fills in its own column and leaves the rest alone.
type Paper struct {
	types.Record `yaml:",inline"`

	// Relevance is LabelRelevant, LabelNotRelevant, or LabelError.
	Relevance string `json:"decision_trees_related,omitempty" yaml:"decision_trees_related,omitempty"`

	// DomainValidated is the oracle-assigned domain label.
	DomainValidated string `json:"domain_validated,omitempty" yaml:"domain_validated,omitempty"`

	// Features and Evidence hold the "; "-joined extracted feature names
	// and their evidence sentences.
	Features string `json:"features,omitempty" yaml:"features,omitempty"`
	Evidence string `json:"evidence,omitempty" yaml:"evidence,omitempty"`

	// FeatureValidation is LabelValid, LabelNotValid, or LabelError.
	FeatureValidation string `json:"feature_validation,omitempty" yaml:"feature_validation,omitempty"`
}

// LoadCorpus reads a merged-corpus snapshot into annotatable papers.
func LoadCorpus(path string) ([]Paper, error) {
	var records []types.Record
	if err := artifact.ReadJSON(path, &records); err != nil {
		return nil, err
	}
	papers := make([]Paper, len(records))
	for i, r := range records {
		papers[i] = Paper{Record: r}
	}
	return papers, nil
}

// LoadPapers reads a previously annotated paper snapshot.
func LoadPapers(path string) ([]Paper, error) {
	var papers []Paper
	if err := artifact.ReadJSON(path, &papers); err != nil {
		return nil, err
	}
	return papers, nil
}
