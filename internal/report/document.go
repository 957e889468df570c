package report

import (
	"encoding/json"
	"time"
)

// Document is the machine-readable form of a report. All eleven categories are
// present as keys even when empty, unlike the rendered reports which omit
// empty sections.
type Document struct {
	LabSKU        string        `json:"lab_sku"`
	Timestamp     string        `json:"timestamp"`
	MinExpDate    string        `json:"min_exp_date"`
	MaxExpDate    string        `json:"max_exp_date"`
	OverallStatus Status        `json:"overall_status"`
	Summary       Summary       `json:"summary"`

	SSLChecks                []CheckResult `json:"ssl_checks"`
	LicenseChecks            []CheckResult `json:"license_checks"`
	NTPChecks                []CheckResult `json:"ntp_checks"`
	VMConfigChecks           []CheckResult `json:"vm_config_checks"`
	VMResourceChecks         []CheckResult `json:"vm_resource_checks"`
	PasswordExpirationChecks []CheckResult `json:"password_expiration_checks"`
	LinuxChecks              []CheckResult `json:"linux_checks"`
	WindowsChecks            []CheckResult `json:"windows_checks"`
	URLChecks                []CheckResult `json:"url_checks"`
	VSphereChecks            []CheckResult `json:"vsphere_checks"`
	InventoryChecks          []CheckResult `json:"inventory_checks"`
}

// ToDocument converts the report into its serializable form. The conversion is
// stable: repeated calls on the same report state produce identical documents.
func (r *Report) ToDocument() Document {
	nonNil := func(cat Category) []CheckResult {
		if cs := r.checks[cat]; cs != nil {
			return cs
		}
		return []CheckResult{}
	}

	return Document{
		LabSKU:        r.LabSKU,
		Timestamp:     r.Timestamp.Format(time.RFC3339),
		MinExpDate:    r.MinExpDate,
		MaxExpDate:    r.MaxExpDate,
		OverallStatus: r.OverallStatus,
		Summary:       r.GetSummary(),

		SSLChecks:                nonNil(CategorySSL),
		LicenseChecks:            nonNil(CategoryLicense),
		NTPChecks:                nonNil(CategoryNTP),
		VMConfigChecks:           nonNil(CategoryVMConfig),
		VMResourceChecks:         nonNil(CategoryVMResource),
		PasswordExpirationChecks: nonNil(CategoryPasswordExpiration),
		LinuxChecks:              nonNil(CategoryLinux),
		WindowsChecks:            nonNil(CategoryWindows),
		URLChecks:                nonNil(CategoryURL),
		VSphereChecks:            nonNil(CategoryVSphere),
		InventoryChecks:          nonNil(CategoryInventory),
	}
}

// Checks returns the document's results for one category.
func (d Document) Checks(cat Category) []CheckResult {
	switch cat {
	case CategorySSL:
		return d.SSLChecks
	case CategoryLicense:
		return d.LicenseChecks
	case CategoryNTP:
		return d.NTPChecks
	case CategoryVMConfig:
		return d.VMConfigChecks
	case CategoryVMResource:
		return d.VMResourceChecks
	case CategoryPasswordExpiration:
		return d.PasswordExpirationChecks
	case CategoryLinux:
		return d.LinuxChecks
	case CategoryWindows:
		return d.WindowsChecks
	case CategoryURL:
		return d.URLChecks
	case CategoryVSphere:
		return d.VSphereChecks
	case CategoryInventory:
		return d.InventoryChecks
	default:
		return nil
	}
}

// ToJSON serializes the report as an indented JSON document.
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r.ToDocument(), "", "  ")
}

// ParseDocument reads a serialized report document back.
func ParseDocument(data []byte) (Document, error) {
	var d Document
	err := json.Unmarshal(data, &d)
	return d, err
}
