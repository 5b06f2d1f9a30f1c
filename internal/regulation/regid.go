// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package regulation

import (
	"path/filepath"
	"strings"
)

// regIDTable maps recognized fragments of legal-text filenames to short
// regulation identifiers. Matching is by substring, in table order, so a
// more specific fragment must precede any prefix of it.
var regIDTable = []struct {
	Fragment string
	ID       string
}{
	{"Australia Privacy Act 1988", "Australia Privacy Act"},
	{"COPPA", "COPPA"},
	{"California CPRA", "CPRA"},
	{"Canada PIPEDA", "PIPEDA"},
	{"China PIPL", "PIPL"},
	{"Consumer–General(California CCPA § 1798.140(v)(1))", "CCPA"},
	{"E-commerce_Retail_and_Security_OWASP-MSP_OWASP_Top_Ten_2021", "OWASP Top Ten"},
	{"EU Digital Markets Act (DMA)", "DMA"},
	{"EU Digital Services Act (DSA)", "DSA"},
	{"EU NIS2 Directive (Network and Information Security)", "NIS2"},
	{"EU eHealth Network Guidelines", "EU eHealth Network"},
	{"FERPA", "FERPA"},
	{"General Data Protection Regulation (2017)", "GDPR"},
	{"Healthcare_GDPR_Art9(1)", "GDPR"},
	{"Healthcare_HIPAA_§164.514", "HIPAA"},
	{"Healthcare_HITECH_Act(42 U.S.C. Ch. 156)", "HITECH"},
	{"India DPDP Act (Digital Personal Data Protection Act 2023)", "DPDP"},
	{"Insurance_NAIC_Model_Privacy_Act_MDL-672", "NAIC"},
	{"Japan APPI (Act on the Protection of Personal Information)", "APPI"},
	{"NIST SP 800-53 – Security and privacy controls.", "NIST SP 800-53"},
	{"New York SHIELD Act", "SHIELD"},
	{"PCI DSS (Payment Card Industry Data Security Standard)", "PCI DSS"},
	{"PSD2 (EU Payment Services Directive 2)", "PSD2"},
	{"Russia Federal Law on Personal Data", "Russia Personal Data Law"},
	{"SOX (Sarbanes-Oxley Act)", "SOX"},
	{"Singapore PDPA (Personal Data Protection Act 2012)", "PDPA"},
	{"South Africa POPIA (Protection of Personal Information Act)", "POPIA"},
	{"Telecommunications_and_Network_Security_ECPA(18 U.S.C. Ch. 119, §§ 2510–2523)", "ECPA"},
	{"Telecommunications_and_Network_Security_ePrivacy_Directive_2002:58:EC(Articles 5 & 6)", "ePrivacy Directive"},
	{"UK Data Protection Act (2018)", "UK DPA"},
	{"US 42 CFR Part 2", "42 CFR Part 2"},
	{"US CAN-SPAM Act", "CAN-SPAM"},
	{"US Genetic Information Nondiscrimination Act (GINA)", "GINA"},
	{"VPPA (Video Privacy Protection Act)", "VPPA"},
	{"banking_and_finance_FCRA_§1681", "FCRA"},
	{"banking_and_finance_GLBA_§6809", "GLBA"},
	{"banking_and_finance_bcbs239", "BCBS239"},
}

// RegulationID derives the short regulation identifier from a legal-text
// filename. Recognized fragments map through the table; otherwise the
// filename base before any parenthesis is used as-is, so an unlisted
// regulation still gets a stable, human-readable ID.
func RegulationID(filename string) string {
	name := strings.TrimSuffix(filepath.Base(filename), ".pdf")
	for _, e := range regIDTable {
		if strings.Contains(name, e.Fragment) {
			return e.ID
		}
	}

	base, _, _ := strings.Cut(name, "(")
	base = strings.TrimSpace(base)
	for _, e := range regIDTable {
		if e.Fragment == base {
			return e.ID
		}
	}
	return base
}
