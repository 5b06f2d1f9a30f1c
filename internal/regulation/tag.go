// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regulation

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdiddy/privacy-scan/internal/artifact"
	"github.com/pdiddy/privacy-scan/internal/oracle"
	"github.com/pdiddy/privacy-scan/pkg/types"
)

// tagSystemPrompt instructs the oracle to answer exactly two questions
// per passage: is any data element regulated, and under which classes.
// Anything outside the strict JSON shape is discarded.
var tagSystemPrompt = "You are a legal-compliance analyst. Decide whether the law fragment " +
	"mentions that any data element is regulated. If yes, list the exact matching " +
	"privacy class from the list below (Other corresponds to anything else that does not match)." +
	" Respond *only* with JSON:\n" +
	"{\n" +
	"  \"regulated\": true|false,\n" +
	"  \"classes\":   [at least one class name from the attribute classes],\n" +
	"  \"rationale\": \"<=15 words\"\n" +
	"}\n" +
	"Allowed class names: " + classNames() + "."

func classNames() string {
	names := make([]string, len(types.AttributeClasses))
	for i, c := range types.AttributeClasses {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}

// tagResponse is the strict JSON shape expected back from the oracle.
type tagResponse struct {
	Regulated bool     `json:"regulated"`
	Classes   []string `json:"classes"`
	Rationale string   `json:"rationale"`
}

// CrosswalkEntry records the first passage tagged with each attribute
// class across the whole run, as a worked example of the class.
type CrosswalkEntry struct {
	AttributeClass types.AttributeClass `json:"attribute_class" yaml:"attribute_class"`
	FirstExample   string               `json:"first_example" yaml:"first_example"`
}

// TagResult holds the tagged clause rows and run diagnostics.
type TagResult struct {
	// Clauses are the regulated passages, deduplicated, in encounter order.
	Clauses []types.Clause

	// Crosswalk holds one first-example row per class, sorted by class.
	Crosswalk []CrosswalkEntry

	// Calls counts oracle invocations; Regulated counts affirmative verdicts.
	Calls     int
	Regulated int
}

type extractor struct {
	backend oracle.Backend
	cfg     types.SegmentConfig
	w       io.Writer
	audit   io.Writer

	clauses      []types.Clause
	seen         map[string]bool
	firstExample map[types.AttributeClass]string
	calls        int
	regulated    int
}

// Extract walks every PDF under cfg.PDFDir, segments its pages on
// citation headings, and asks the oracle to tag each passage. A passage
// whose verdict cannot be obtained or parsed is treated as unregulated
// and skipped; a directory without PDFs is an error. Every oracle
// exchange is appended to audit when non-nil.
func Extract(ctx context.Context, backend oracle.Backend, cfg types.SegmentConfig, w, audit io.Writer) (*TagResult, error) {
	paths, err := filepath.Glob(filepath.Join(cfg.PDFDir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", cfg.PDFDir, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no PDFs in %s", cfg.PDFDir)
	}
	sort.Strings(paths)

	e := &extractor{
		backend:      backend,
		cfg:          cfg,
		w:            w,
		audit:        audit,
		seen:         make(map[string]bool),
		firstExample: make(map[types.AttributeClass]string),
	}

	for _, path := range paths {
		name := filepath.Base(path)
		regID := RegulationID(name)
		fmt.Fprintf(w, "tagging %s as %q\n", name, regID)

		pages, err := PageTexts(path)
		if err != nil {
			fmt.Fprintf(w, "warning: could not read %s: %v\n", name, err)
			continue
		}
		for _, page := range pages {
			if err := e.tagSegments(ctx, regID, name, Segments(page, cfg.MaxSnippet)); err != nil {
				return nil, err
			}
		}
	}

	res := &TagResult{
		Clauses:   e.clauses,
		Crosswalk: e.crosswalk(),
		Calls:     e.calls,
		Regulated: e.regulated,
	}
	fmt.Fprintf(w, "tagged %d regulated clauses from %d oracle calls\n", len(res.Clauses), res.Calls)
	return res, nil
}

// tagSegments runs the oracle over one page's segments, collecting
// regulated clauses and class first-examples.
func (e *extractor) tagSegments(ctx context.Context, regID, fileName string, segs []Segment) error {
	for _, seg := range segs {
		resp, err := oracle.CallWithRetry(ctx, e.backend, oracle.Request{
			System:    tagSystemPrompt,
			User:      fmt.Sprintf("REF: %s\nTEXT:\n%s", seg.ArticleRef, seg.Snippet),
			MaxTokens: 120,
		}, e.cfg.MaxRetries)
		e.calls++
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(e.w, "warning: %s %s: %v; passage skipped\n", regID, seg.ArticleRef, err)
			e.writeAudit(fileName, regID, seg, "")
			continue
		}
		e.writeAudit(fileName, regID, seg, resp)

		var verdict tagResponse
		if err := json.Unmarshal([]byte(strings.TrimSpace(resp)), &verdict); err != nil {
			fmt.Fprintf(e.w, "warning: %s %s: unparseable verdict; passage skipped\n", regID, seg.ArticleRef)
			continue
		}
		if !verdict.Regulated {
			if err := oracle.Pause(ctx, e.cfg.RequestDelay); err != nil {
				return err
			}
			continue
		}
		e.regulated++

		var classes []string
		for _, c := range verdict.Classes {
			if types.ValidClass(c) {
				classes = append(classes, c)
			}
		}
		e.record(types.Clause{
			RegID:          regID,
			ArticleRef:     seg.ArticleRef,
			QuotedText:     seg.Snippet,
			AttributeClass: strings.Join(classes, ";"),
			Rationale:      verdict.Rationale,
		})
		for _, c := range classes {
			if _, ok := e.firstExample[types.AttributeClass(c)]; !ok {
				e.firstExample[types.AttributeClass(c)] = seg.Snippet
			}
		}

		if err := oracle.Pause(ctx, e.cfg.RequestDelay); err != nil {
			return err
		}
	}
	return nil
}

// record appends a clause unless an identical row was already seen.
func (e *extractor) record(c types.Clause) {
	key, _ := json.Marshal(c)
	if e.seen[string(key)] {
		return
	}
	e.seen[string(key)] = true
	e.clauses = append(e.clauses, c)
}

func (e *extractor) crosswalk() []CrosswalkEntry {
	entries := make([]CrosswalkEntry, 0, len(e.firstExample))
	for c, txt := range e.firstExample {
		entries = append(entries, CrosswalkEntry{AttributeClass: c, FirstExample: txt})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].AttributeClass < entries[j].AttributeClass
	})
	return entries
}

func (e *extractor) writeAudit(fileName, regID string, seg Segment, raw string) {
	if e.audit == nil {
		return
	}
	line, _ := json.Marshal(map[string]string{
		"file":    fileName,
		"reg_id":  regID,
		"ref":     seg.ArticleRef,
		"snippet": truncate(seg.Snippet, 200),
		"oracle":  raw,
	})
	e.audit.Write(append(line, '\n'))
}

// WriteSnapshots publishes the clause and crosswalk tables as JSON and
// CSV under processedDir.
func WriteSnapshots(res *TagResult, processedDir string) error {
	if err := artifact.WriteJSON(filepath.Join(processedDir, "reg_sections_clauses.json"), res.Clauses); err != nil {
		return err
	}
	if err := artifact.WriteJSON(filepath.Join(processedDir, "reg_sections_crosswalk.json"), res.Crosswalk); err != nil {
		return err
	}

	clauseRows := make([][]string, 0, len(res.Clauses))
	for _, c := range res.Clauses {
		clauseRows = append(clauseRows, []string{c.RegID, c.ArticleRef, c.QuotedText, c.AttributeClass, c.Rationale})
	}
	if err := artifact.WriteCSV(filepath.Join(processedDir, "reg_sections_clauses.csv"),
		[]string{"reg_id", "article_ref", "quoted_text", "attribute_class", "rationale"}, clauseRows); err != nil {
		return err
	}

	crossRows := make([][]string, 0, len(res.Crosswalk))
	for _, e := range res.Crosswalk {
		crossRows = append(crossRows, []string{string(e.AttributeClass), e.FirstExample})
	}
	return artifact.WriteCSV(filepath.Join(processedDir, "reg_sections_crosswalk.csv"),
		[]string{"attribute_class", "first_example"}, crossRows)
}
