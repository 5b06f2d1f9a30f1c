// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/privacy-scan/internal/oracle"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// Stage label vocabularies. LabelError marks a record whose oracle call
// failed after retries; it never aborts the batch.
const (
	LabelRelevant    = "Relevant"
	LabelNotRelevant = "Not relevant"
	LabelError       = "Error"

	LabelValid    = "Valid"
	LabelNotValid = "Not valid"

	// DomainNone is the residual domain label.
	DomainNone = "none_of_the_above"
)

// DefaultDomains is the fixed domain vocabulary offered to the oracle
// when the configuration does not supply one.
var DefaultDomains = []string{
	"banking_finance",
	"healthcare_pharma",
	"insurance",
	"ecommerce_retail",
	"telecom_network_security",
	"social_media",
	"education_learning_analytics",
	"iot_smart_systems",
	"government_public_admin",
	"cybersecurity_intrusion_detection",
	"hr_recruitment",
	"transportation_logistics",
	DomainNone,
}

const relevanceSystemPrompt = "You are an expert in privacy-preserving machine learning. " +
	"Your task is to read a paper's title, abstract and venue, " +
	"and decide whether it presents or applies a decision-tree-based machine learning algorithm. " +
	"Respond with exactly one of: 'Relevant' or 'Not relevant', and nothing else."

// Classifier drives the oracle stages. Backend and W are required; the
// config's zero values select the stage defaults.
type Classifier struct {
	Backend oracle.Backend
	Cfg     types.ClassifyConfig
	W       io.Writer
}

// label performs one oracle call and returns the trimmed response text.
func (c *Classifier) label(ctx context.Context, system, user string, maxTokens int) (string, error) {
	resp, err := oracle.CallWithRetry(ctx, c.Backend, oracle.Request{
		System:    system,
		User:      user,
		MaxTokens: maxTokens,
	}, c.Cfg.MaxRetries)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp), nil
}

// Relevance annotates every paper with the binary relevance verdict. A
// response outside the two-label vocabulary, or a failed call, records
// LabelError for that paper.
func (c *Classifier) Relevance(ctx context.Context, papers []Paper) error {
	for i := range papers {
		p := &papers[i]
		user := fmt.Sprintf("Title: %s\n\nVenue: %s\n\nAbstract: %s\n\n",
			p.Title, p.Venue, orNA(p.Abstract))

		label, err := c.label(ctx, relevanceSystemPrompt, user, 3)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(c.W, "warning: relevance for %q: %v\n", clip(p.Title, 30), err)
			label = LabelError
		case label != LabelRelevant && label != LabelNotRelevant:
			fmt.Fprintf(c.W, "warning: relevance for %q: off-vocabulary %q\n", clip(p.Title, 30), label)
			label = LabelError
		}
		p.Relevance = label

		if err := oracle.Pause(ctx, c.Cfg.RequestDelay); err != nil {
			return err
		}
	}
	return nil
}

// Domains returns the configured domain vocabulary, or the default set.
func (c *Classifier) Domains() []string {
	if len(c.Cfg.Domains) > 0 {
		return c.Cfg.Domains
	}
	return DefaultDomains
}

func domainSystemPrompt(domains []string) string {
	var sb strings.Builder
	sb.WriteString("You are an expert in classifying papers by domain. ")
	fmt.Fprintf(&sb, "Read a paper's title, abstract, keywords, and venue, and choose exactly one of these %d domains:\n", len(domains))
	for i, d := range domains {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, d)
	}
	sb.WriteString("Respond with exactly one domain string from the list above, and nothing else.")
	return sb.String()
}

// Domain assigns a domain label to every relevant paper. Responses
// outside the domain vocabulary degrade to DomainNone rather than
// inventing a new category.
func (c *Classifier) Domain(ctx context.Context, papers []Paper) error {
	domains := c.Domains()
	allowed := make(map[string]bool, len(domains))
	for _, d := range domains {
		allowed[d] = true
	}
	system := domainSystemPrompt(domains)

	for i := range papers {
		p := &papers[i]
		if p.Relevance != LabelRelevant {
			continue
		}
		user := fmt.Sprintf("Title: %s\n\nAbstract: %s\n\n", p.Title, orNA(p.Abstract))

		label, err := c.label(ctx, system, user, 10)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(c.W, "warning: domain for %q: %v\n", clip(p.Title, 30), err)
			label = LabelError
		case !allowed[label]:
			fmt.Fprintf(c.W, "warning: domain for %q: off-vocabulary %q\n", clip(p.Title, 30), label)
			label = DomainNone
		}
		p.DomainValidated = label

		if err := oracle.Pause(ctx, c.Cfg.RequestDelay); err != nil {
			return err
		}
	}
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func clip(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
