// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// AttributeClass is one of the fixed privacy-relevant categories assigned to
// a feature or a regulatory clause.
type AttributeClass string

const (
	ClassIdentifierPII AttributeClass = "Identifier_PII"
	ClassContactInfo   AttributeClass = "Contact_Info"
	ClassDeviceOnline  AttributeClass = "Device_OnlineID"
	ClassBiometric     AttributeClass = "Biometric"
	ClassLocationIoT   AttributeClass = "Location_IoT"
	ClassHealth        AttributeClass = "Health_Clinical"
	ClassFinancial     AttributeClass = "Financial"
	ClassChildData     AttributeClass = "Child_Data"
	ClassDemographic   AttributeClass = "Demographic"
	ClassBehavioural   AttributeClass = "Behavioural"
	ClassEnvironmental AttributeClass = "Environmental"
	ClassOperational   AttributeClass = "Operational_Business"

	// ClassOther is the residual class: a passage or feature that matched
	// no regulated category. It carries no regulatory signal and is
	// excluded from the feature-regulation join.
	ClassOther AttributeClass = "Other"
)

// AttributeClasses lists every valid class in presentation order.
var AttributeClasses = []AttributeClass{
	ClassIdentifierPII, ClassContactInfo, ClassDeviceOnline, ClassBiometric,
	ClassLocationIoT, ClassHealth, ClassFinancial, ClassChildData,
	ClassDemographic, ClassBehavioural, ClassEnvironmental, ClassOperational,
	ClassOther,
}

// ValidClass reports whether s names one of the fixed attribute classes.
func ValidClass(s string) bool {
	for _, c := range AttributeClasses {
		if string(c) == s {
			return true
		}
	}
	return false
}

// Feature is a canonicalized predictor-variable name extracted from a
// paper's abstract, with its assigned attribute class and provenance back to
// the originating paper.
type Feature struct {
	// Name is the sanitized feature label (e.g. "Credit score").
	Name string `json:"feature_clean" yaml:"feature_clean"`

	// Title, Abstract, DOI, and Domain link the feature to the paper it
	// was extracted from.
	Title    string `json:"title" yaml:"title"`
	Abstract string `json:"abstract" yaml:"abstract"`
	DOI      string `json:"doi,omitempty" yaml:"doi,omitempty"`
	Domain   string `json:"domain_validated" yaml:"domain_validated"`

	// AttributeClass is the 13-way class assigned by the oracle.
	AttributeClass AttributeClass `json:"attribute_class" yaml:"attribute_class"`

	// Notes is the oracle's rationale for the class assignment. Opaque.
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Clause is a quoted regulatory passage tagged with the attribute classes
// the oracle assigned to it.
type Clause struct {
	// RegID is the short regulation identifier (e.g. "GDPR").
	RegID string `json:"reg_id" yaml:"reg_id"`

	// ArticleRef is the legal citation heading the passage appeared under.
	ArticleRef string `json:"article_ref" yaml:"article_ref"`

	// QuotedText is the passage text, truncated to the snippet budget.
	QuotedText string `json:"quoted_text" yaml:"quoted_text"`

	// AttributeClass holds the semicolon-joined class set for the passage.
	AttributeClass string `json:"attribute_class" yaml:"attribute_class"`

	// Rationale is the oracle's explanation for the tagging. Opaque.
	Rationale string `json:"rationale,omitempty" yaml:"rationale,omitempty"`
}

// Evidence groups the deduplicated passages quoted under one article
// reference, in first-occurrence order.
type Evidence struct {
	ArticleRef string   `json:"article_ref" yaml:"article_ref"`
	Passages   []string `json:"passages" yaml:"passages"`
}

// FeatureRegulationPair is the aggregate produced by joining features and
// clauses on attribute class: one row per distinct (feature, regulation)
// combination, carrying every matched article reference and passage.
type FeatureRegulationPair struct {
	Feature `yaml:",inline"`

	// RegID is the matched regulation.
	RegID string `json:"reg_id" yaml:"reg_id"`

	// ArticleRef is the semicolon-joined list of distinct matched article
	// references in first-occurrence order.
	ArticleRef string `json:"article_ref" yaml:"article_ref"`

	// QuotedText associates each distinct article reference with its
	// deduplicated, order-preserving passages.
	QuotedText []Evidence `json:"quoted_text" yaml:"quoted_text"`
}

// Regulation-status vocabulary for validated pairs. StatusUnclear is the
// sentinel recorded when the oracle response cannot be parsed or the call
// fails after retries.
const (
	StatusRegulated    = "Regulated"
	StatusNotRegulated = "Not Regulated"
	StatusUnclear      = "Not Clearly Regulated"

	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

// ValidatedPair is a FeatureRegulationPair with the validation oracle's
// verdict appended. The verdict never alters the pair's identity fields.
type ValidatedPair struct {
	FeatureRegulationPair `yaml:",inline"`

	// RegulationStatus is StatusRegulated, StatusNotRegulated, or the
	// StatusUnclear sentinel.
	RegulationStatus string `json:"regulation_status" yaml:"regulation_status"`

	// Confidence is High, Medium, or Low.
	Confidence string `json:"confidence" yaml:"confidence"`

	// ValidationRationale is the oracle's explanation. Opaque.
	ValidationRationale string `json:"validation_rationale" yaml:"validation_rationale"`
}
