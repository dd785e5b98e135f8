package company

import (
	"github.com/freightdeck/freightdeck/internal/docstore"
)

// Collection holds company profiles, keyed by company name. The owning
// account is referenced through the userId field.
const Collection = "companies"

// KYC document slots, in the order they are uploaded. Each slot maps a
// form part name to the key it lands under in the profile's documents map.
var kycDocumentSlots = []struct {
	FormField string
	DocKey    string
}{
	{"gst", "gstCertificate"},
	{"pan", "panCard"},
	{"incorporation", "incorporationCertificate"},
	{"signatory", "signatoryId"},
	{"bank", "bankDetails"},
}

// serviceFlags are the boolean capability toggles captured during KYC.
var serviceFlags = []string{
	"multimodalServices",
	"multitemperatureService",
	"partialLoadingAndUnloading",
	"realtimeTracking",
}

// Profile wraps a company document together with its key.
type Profile struct {
	Key string
	Doc docstore.Document
}

// Name returns the company name, tolerating both historical spellings.
func (p Profile) Name() string {
	return p.Doc.FirstString("company_name", "companyName")
}

// KYCStatus returns the profile's KYC state, defaulting to not-submitted.
func (p Profile) KYCStatus() string {
	if s := p.Doc.String("kycStatus"); s != "" {
		return s
	}
	return "not-submitted"
}
