// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feature

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/privacy-scan/pkg/types"
)

// Vocabulary maps normalized feature-name variants to attribute-class
// hints. The table is static configuration: a pure lookup, never
// authoritative — the oracle's classification always decides.
type Vocabulary map[string]types.AttributeClass

// Hint returns the class hint for a feature name, or "" when the
// vocabulary has no entry. Unmatched input passes through untouched.
func (v Vocabulary) Hint(name string) types.AttributeClass {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	return v[key]
}

// LoadVocabulary reads a variant→class table from a YAML file. Entries
// naming an unknown class are rejected so a typo in the table cannot
// silently misroute features.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}

	vocab := make(Vocabulary, len(raw))
	for variant, class := range raw {
		if !types.ValidClass(class) {
			return nil, fmt.Errorf("vocabulary %s: variant %q names unknown class %q", path, variant, class)
		}
		key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(variant)), " ", "_")
		vocab[key] = types.AttributeClass(class)
	}
	return vocab, nil
}

// DefaultVocabulary is the built-in master synonym list, keyed by
// snake_case variant.
func DefaultVocabulary() Vocabulary {
	return defaultVocab
}

var defaultVocab = Vocabulary{
	// Identifiers & PII
	"ssn":                    types.ClassIdentifierPII,
	"social_security_number": types.ClassIdentifierPII,
	"passport_number":        types.ClassIdentifierPII,
	"national_id":            types.ClassIdentifierPII,
	"tax_identifier":         types.ClassIdentifierPII,
	"driver_license_number":  types.ClassIdentifierPII,
	"license_plate":          types.ClassIdentifierPII,
	"account_number":         types.ClassIdentifierPII,
	"customer_id":            types.ClassIdentifierPII,
	"user_id":                types.ClassIdentifierPII,
	"employee_id":            types.ClassIdentifierPII,
	"student_id":             types.ClassIdentifierPII,
	"patient_id":             types.ClassIdentifierPII,
	"transaction_id":         types.ClassIdentifierPII,
	"nhs_number":             types.ClassIdentifierPII,
	"aadhaar":                types.ClassIdentifierPII,

	// Contact info
	"email":           types.ClassContactInfo,
	"e_mail":          types.ClassContactInfo,
	"phone":           types.ClassContactInfo,
	"telephone":       types.ClassContactInfo,
	"cellphone":       types.ClassContactInfo,
	"mobile":          types.ClassContactInfo,
	"postal_address":  types.ClassContactInfo,
	"mailing_address": types.ClassContactInfo,

	// Device & online identifiers
	"device_id":           types.ClassDeviceOnline,
	"imei":                types.ClassDeviceOnline,
	"mac_address":         types.ClassDeviceOnline,
	"uuid":                types.ClassDeviceOnline,
	"cookie_id":           types.ClassDeviceOnline,
	"browser_fingerprint": types.ClassDeviceOnline,
	"ip_address":          types.ClassDeviceOnline,
	"session_id":          types.ClassDeviceOnline,
	"tracking_id":         types.ClassDeviceOnline,

	// Biometric
	"fingerprint":  types.ClassBiometric,
	"face_scan":    types.ClassBiometric,
	"iris_scan":    types.ClassBiometric,
	"voiceprint":   types.ClassBiometric,
	"retina_scan":  types.ClassBiometric,
	"dna":          types.ClassBiometric,
	"genetic_data": types.ClassBiometric,

	// Location & IoT
	"gps":                 types.ClassLocationIoT,
	"location_data":       types.ClassLocationIoT,
	"location_history":    types.ClassLocationIoT,
	"address":             types.ClassLocationIoT,
	"travel_itinerary":    types.ClassLocationIoT,
	"vehicle_identifier":  types.ClassLocationIoT,
	"ambient_temperature": types.ClassLocationIoT,
	"ambient_humidity":    types.ClassLocationIoT,
	"noise_level":         types.ClassLocationIoT,
	"sensor_reading":      types.ClassLocationIoT,

	// Health & clinical
	"health_data":        types.ClassHealth,
	"diagnosis":          types.ClassHealth,
	"treatment":          types.ClassHealth,
	"prescription":       types.ClassHealth,
	"medical_record":     types.ClassHealth,
	"disability_status":  types.ClassHealth,
	"mental_health":      types.ClassHealth,
	"vaccination_status": types.ClassHealth,
	"lab_result":         types.ClassHealth,

	// Financial
	"credit_score":        types.ClassFinancial,
	"credit_card":         types.ClassFinancial,
	"credit_report":       types.ClassFinancial,
	"credit_limit":        types.ClassFinancial,
	"income_amount":       types.ClassFinancial,
	"family_income":       types.ClassFinancial,
	"salary":              types.ClassFinancial,
	"loan_amount":         types.ClassFinancial,
	"account_balance":     types.ClassFinancial,
	"payment_history":     types.ClassFinancial,
	"tax_information":     types.ClassFinancial,
	"iban":                types.ClassFinancial,
	"swift_code":          types.ClassFinancial,
	"payment_card_number": types.ClassFinancial,

	// Child data
	"minor_status":     types.ClassChildData,
	"student_record":   types.ClassChildData,
	"parental_consent": types.ClassChildData,

	// Demographic
	"age":             types.ClassDemographic,
	"dob":             types.ClassDemographic,
	"date_of_birth":   types.ClassDemographic,
	"sex":             types.ClassDemographic,
	"gender":          types.ClassDemographic,
	"nationality":     types.ClassDemographic,
	"language":        types.ClassDemographic,
	"marital_status":  types.ClassDemographic,
	"education_level": types.ClassDemographic,
	"race":            types.ClassDemographic,
	"ethnicity":       types.ClassDemographic,

	// Behavioural
	"user_activity":         types.ClassBehavioural,
	"clickstream":           types.ClassBehavioural,
	"browsing_history":      types.ClassBehavioural,
	"search_history":        types.ClassBehavioural,
	"app_usage":             types.ClassBehavioural,
	"purchase_history":      types.ClassBehavioural,
	"session_duration":      types.ClassBehavioural,
	"communication_content": types.ClassBehavioural,
	"keystroke_pattern":     types.ClassBehavioural,
	"video_watch_history":   types.ClassBehavioural,

	// Environmental
	"environmental_reading": types.ClassEnvironmental,
	"energy_consumption":    types.ClassEnvironmental,
	"inventory_level":       types.ClassEnvironmental,

	// Operational / business
	"model_parameter":  types.ClassOperational,
	"risk_score":       types.ClassOperational,
	"fraud_score":      types.ClassOperational,
	"operational_cost": types.ClassOperational,
}
