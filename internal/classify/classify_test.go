// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pdiddy/privacy-scan/internal/oracle"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// scriptedBackend replays canned responses and records each request.
type scriptedBackend struct {
	responses []string
	err       error
	requests  []oracle.Request
}

func (b *scriptedBackend) Complete(ctx context.Context, req oracle.Request) (string, error) {
	b.requests = append(b.requests, req)
	if b.err != nil {
		return "", b.err
	}
	resp := b.responses[0]
	if len(b.responses) > 1 {
		b.responses = b.responses[1:]
	}
	return resp, nil
}

func newTestClassifier(b *scriptedBackend, buf *bytes.Buffer) *Classifier {
	return &Classifier{Backend: b, W: buf}
}

func TestRelevanceAnnotatesEachPaper(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"Relevant", "Not relevant", "Maybe"}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{
		{Record: types.Record{Title: "A"}},
		{Record: types.Record{Title: "B"}},
		{Record: types.Record{Title: "C"}},
	}
	if err := c.Relevance(context.Background(), papers); err != nil {
		t.Fatal(err)
	}

	want := []string{LabelRelevant, LabelNotRelevant, LabelError}
	for i, w := range want {
		if papers[i].Relevance != w {
			t.Errorf("papers[%d].Relevance = %q, want %q", i, papers[i].Relevance, w)
		}
	}
	if !strings.Contains(buf.String(), "off-vocabulary") {
		t.Errorf("missing off-vocabulary warning in %q", buf.String())
	}
}

func TestRelevanceErrorSentinelOnFailure(t *testing.T) {
	backend := &scriptedBackend{err: errors.New("boom")}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)
	c.Cfg.MaxRetries = 1

	papers := []Paper{{Record: types.Record{Title: "A"}}}
	if err := c.Relevance(context.Background(), papers); err != nil {
		t.Fatal(err)
	}
	if papers[0].Relevance != LabelError {
		t.Errorf("Relevance = %q, want %q", papers[0].Relevance, LabelError)
	}
}

func TestDomainSkipsIrrelevantPapers(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"banking_finance"}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{
		{Record: types.Record{Title: "A"}, Relevance: LabelRelevant},
		{Record: types.Record{Title: "B"}, Relevance: LabelNotRelevant},
	}
	if err := c.Domain(context.Background(), papers); err != nil {
		t.Fatal(err)
	}

	if papers[0].DomainValidated != "banking_finance" {
		t.Errorf("DomainValidated = %q", papers[0].DomainValidated)
	}
	if papers[1].DomainValidated != "" {
		t.Errorf("irrelevant paper got domain %q", papers[1].DomainValidated)
	}
	if len(backend.requests) != 1 {
		t.Errorf("oracle calls = %d, want 1", len(backend.requests))
	}
}

func TestDomainOffVocabularyDegradesToNone(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"quantum_computing"}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{{Record: types.Record{Title: "A"}, Relevance: LabelRelevant}}
	if err := c.Domain(context.Background(), papers); err != nil {
		t.Fatal(err)
	}
	if papers[0].DomainValidated != DomainNone {
		t.Errorf("DomainValidated = %q, want %q", papers[0].DomainValidated, DomainNone)
	}
}

func TestDomainPromptEnumeratesVocabulary(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"health"}}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)
	c.Cfg.Domains = []string{"health", "finance"}

	papers := []Paper{{Record: types.Record{Title: "A"}, Relevance: LabelRelevant}}
	if err := c.Domain(context.Background(), papers); err != nil {
		t.Fatal(err)
	}

	system := backend.requests[0].System
	if !strings.Contains(system, "1. health") || !strings.Contains(system, "2. finance") {
		t.Errorf("system prompt missing configured domains: %q", system)
	}
	if papers[0].DomainValidated != "health" {
		t.Errorf("DomainValidated = %q, want health", papers[0].DomainValidated)
	}
}

func TestRelevanceStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	backend := &scriptedBackend{err: errors.New("boom")}
	var buf bytes.Buffer
	c := newTestClassifier(backend, &buf)

	papers := []Paper{{Record: types.Record{Title: "A"}}}
	if err := c.Relevance(ctx, papers); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
