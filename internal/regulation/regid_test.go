// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regulation

import "testing"

func TestRegulationID(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"General Data Protection Regulation (2017).pdf", "GDPR"},
		{"Healthcare_HIPAA_§164.514.pdf", "HIPAA"},
		{"EU NIS2 Directive (Network and Information Security).pdf", "NIS2"},
		{"banking_and_finance_GLBA_§6809.pdf", "GLBA"},
		{"PSD2 (EU Payment Services Directive 2).pdf", "PSD2"},
		{"Telecommunications_and_Network_Security_ePrivacy_Directive_2002:58:EC(Articles 5 & 6).pdf", "ePrivacy Directive"},
		// A fragment match anywhere in the name suffices.
		{"annex_California CPRA_v2.pdf", "CPRA"},
		// Unlisted regulations fall back to the pre-parenthesis base.
		{"Brazil LGPD (Lei Geral de Protecao de Dados).pdf", "Brazil LGPD"},
		{"Some Novel Act.pdf", "Some Novel Act"},
	}

	for _, tt := range tests {
		if got := RegulationID(tt.filename); got != tt.want {
			t.Errorf("RegulationID(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
