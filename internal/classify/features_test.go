// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

func relevantPaper(title string) Paper {
	return Paper{
		Record:          types.Record{Title: title, Abstract: "Age was used in the tree.", Domain: "banking_finance"},
		Relevance:       LabelRelevant,
		DomainValidated: "banking_finance",
	}
}

func TestExtractFeaturesParsesStrictJSON(t *testing.T) {
	backend := &scriptedBackend{responses: []string{
		`{"features": [{"name": "Age", "evidence": "Age was used in the tree."}, {"name": "Income", "evidence": ""}]}`,
	}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{relevantPaper("A")}
	if err := c.ExtractFeatures(context.Background(), papers); err != nil {
		t.Fatal(err)
	}

	if papers[0].Features != "Age; Income" {
		t.Errorf("Features = %q", papers[0].Features)
	}
	if papers[0].Evidence != "Age was used in the tree.; No evidence provided" {
		t.Errorf("Evidence = %q", papers[0].Evidence)
	}
}

func TestExtractFeaturesEmptyListAllowed(t *testing.T) {
	backend := &scriptedBackend{responses: []string{`{"features": []}`}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{relevantPaper("A")}
	if err := c.ExtractFeatures(context.Background(), papers); err != nil {
		t.Fatal(err)
	}
	if papers[0].Features != "" {
		t.Errorf("Features = %q, want empty", papers[0].Features)
	}
	if strings.Contains(buf.String(), "warning") {
		t.Errorf("empty list is not a warning: %q", buf.String())
	}
}

func TestExtractFeaturesSkipsDomainMismatch(t *testing.T) {
	backend := &scriptedBackend{responses: []string{`{"features": []}`}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	p := relevantPaper("A")
	p.DomainValidated = "healthcare_pharma"
	papers := []Paper{p}
	if err := c.ExtractFeatures(context.Background(), papers); err != nil {
		t.Fatal(err)
	}
	if len(backend.requests) != 0 {
		t.Errorf("oracle calls = %d, want 0: validated domain disagrees with harvest domain", len(backend.requests))
	}
}

func TestExtractFeaturesUnparseableResponse(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"Sure! The features are Age and Income."}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{relevantPaper("A")}
	if err := c.ExtractFeatures(context.Background(), papers); err != nil {
		t.Fatal(err)
	}
	if papers[0].Features != "" {
		t.Errorf("Features = %q, want empty on unparseable response", papers[0].Features)
	}
	if !strings.Contains(buf.String(), "unparseable") {
		t.Errorf("missing warning in %q", buf.String())
	}
}

func TestValidateFeatures(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"Valid", "Not valid", "Mostly valid"}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{
		{Record: types.Record{Title: "A"}, Features: "Age"},
		{Record: types.Record{Title: "B"}, Features: "Income"},
		{Record: types.Record{Title: "C"}, Features: "Height"},
		{Record: types.Record{Title: "D"}}, // nothing to validate
	}
	if err := c.ValidateFeatures(context.Background(), papers); err != nil {
		t.Fatal(err)
	}

	want := []string{LabelValid, LabelNotValid, LabelError, ""}
	for i, w := range want {
		if papers[i].FeatureValidation != w {
			t.Errorf("papers[%d].FeatureValidation = %q, want %q", i, papers[i].FeatureValidation, w)
		}
	}
	if len(backend.requests) != 3 {
		t.Errorf("oracle calls = %d, want 3", len(backend.requests))
	}
}
