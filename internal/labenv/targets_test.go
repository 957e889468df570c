package labenv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTargetsFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadTargets_YAML(t *testing.T) {
	path := writeTargetsFile(t, "targets.yaml", `
lab_sku: HOL-2701
urls:
  - "https://vcsa-01a.site-a.vcf.lab/ui,vSphere Client,login"
  - "# commented out"
  - "https://console.lab"
esxi_hosts:
  - esx-01a.site-a.vcf.lab:extra
  - esx-02a.site-a.vcf.lab
vcenters:
  - vcsa-01a.site-a.vcf.lab:administrator@vsphere.local
credentials:
  password: VMware123!
`)

	targets, err := LoadTargets(path)
	require.NoError(t, err)

	assert.Equal(t, "HOL-2701", targets.LabSKU)
	assert.Equal(t, "VMware123!", targets.Credentials.Password)
	// Credential defaults applied.
	assert.Equal(t, "administrator@vsphere.local", targets.Credentials.VCenterUser)
	assert.Equal(t, "root", targets.Credentials.ESXiUser)
	assert.Equal(t, "Administrator", targets.Credentials.WindowsUser)

	entries := targets.URLEntries()
	require.Len(t, entries, 2, "comments are skipped")
	assert.Equal(t, "https://vcsa-01a.site-a.vcf.lab/ui", entries[0].URL)
	assert.Equal(t, "vSphere Client", entries[0].Description)
	assert.Equal(t, "login", entries[0].ExpectedText)
	assert.Equal(t, "https://console.lab", entries[1].URL)
	assert.Empty(t, entries[1].Description)

	assert.Equal(t, []string{"esx-01a.site-a.vcf.lab", "esx-02a.site-a.vcf.lab"}, targets.ESXiHostnames())
	assert.Equal(t, []string{"vcsa-01a.site-a.vcf.lab"}, targets.VCenterHostnames())
}

func TestLoadTargets_JSON(t *testing.T) {
	path := writeTargetsFile(t, "targets.json", `{
		"lab_sku": "HOL-2702",
		"urls": ["https://a.lab,App A"],
		"credentials": {"password": "secret", "linux_user": "holuser"}
	}`)

	targets, err := LoadTargets(path)
	require.NoError(t, err)
	assert.Equal(t, "HOL-2702", targets.LabSKU)
	assert.Equal(t, "holuser", targets.Credentials.LinuxUser)
}

func TestLoadTargets_MissingFile(t *testing.T) {
	_, err := LoadTargets(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading targets file")
}

func TestCertificateURLs(t *testing.T) {
	targets := &Targets{
		URLs:        []string{"https://vcsa-01a.lab/ui,vSphere"},
		ESXiHosts:   []string{"esx-01a.lab"},
		NSXManagers: []string{"nsx-mgr-01a.lab:admin"},
	}

	urls := targets.CertificateURLs()
	assert.Equal(t, []string{
		"https://vcsa-01a.lab/ui",
		"https://esx-01a.lab",
		"https://nsx-mgr-01a.lab",
	}, urls)
}

func TestLinuxAccounts(t *testing.T) {
	targets := &Targets{
		ESXiHosts: []string{"esx-01a.lab"},
		VCenters:  []string{"vcsa-01a.lab"},
		Credentials: Credentials{
			ESXiUser:  "esxadmin",
			LinuxUser: "holuser",
		},
	}
	assert.Equal(t, []Account{
		{Host: "esx-01a.lab", User: "esxadmin"},
		{Host: "vcsa-01a.lab", User: "holuser"},
	}, targets.LinuxAccounts())
}

func TestLinuxAccounts_DefaultUser(t *testing.T) {
	targets := &Targets{
		ESXiHosts: []string{"esx-01a.lab"},
		VCenters:  []string{"vcsa-01a.lab"},
	}
	assert.Equal(t, []Account{
		{Host: "esx-01a.lab", User: "root"},
		{Host: "vcsa-01a.lab", User: "root"},
	}, targets.LinuxAccounts())
}

func TestPasswordAccounts(t *testing.T) {
	targets := &Targets{
		ESXiHosts:    []string{"esx-01a.lab"},
		VCenters:     []string{"vcsa-01a.lab"},
		NSXManagers:  []string{"nsx-mgr-01a.lab"},
		SDDCManagers: []string{"sddcmanager-01a.lab"},
	}

	accounts := targets.PasswordAccounts()
	assert.Equal(t, []Account{
		{Host: "esx-01a.lab", User: "root"},
		{Host: "vcsa-01a.lab", User: "root"},
		{Host: "nsx-mgr-01a.lab", User: "root"},
		{Host: "nsx-mgr-01a.lab", User: "admin"},
		{Host: "sddcmanager-01a.lab", User: "vcf"},
		{Host: "sddcmanager-01a.lab", User: "root"},
		{Host: "sddcmanager-01a.lab", User: "backup"},
	}, accounts)
}

func TestPasswordAccounts_SDDCFromURL(t *testing.T) {
	targets := &Targets{
		URLs: []string{"https://sddcmanager-01a.lab:443/ui,SDDC Manager"},
	}

	accounts := targets.PasswordAccounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, Account{Host: "sddcmanager-01a.lab", User: "vcf"}, accounts[0])
}

func TestParseURLEntry(t *testing.T) {
	tests := []struct {
		name  string
		entry string
		want  URLEntry
	}{
		{
			name:  "url only",
			entry: "https://a.lab",
			want:  URLEntry{URL: "https://a.lab"},
		},
		{
			name:  "with description",
			entry: "https://a.lab, App A ",
			want:  URLEntry{URL: "https://a.lab", Description: "App A"},
		},
		{
			name:  "with expected text containing comma",
			entry: "https://a.lab,App A,Welcome, user",
			want:  URLEntry{URL: "https://a.lab", Description: "App A", ExpectedText: "Welcome, user"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseURLEntry(tt.entry))
		})
	}
}
