package labenv

import (
	"fmt"
	"strings"

	"github.com/hol-platform/labcheck/internal/fileutil"
)

// Targets is the lab resource inventory loaded from the targets file (JSON or
// YAML). Each list entry may carry a trailing comment-style suffix
// ("host:extra" or "url,description,expected_text") matching the lab manifest
// conventions; blank lines and #-prefixed entries are ignored.
type Targets struct {
	LabSKU       string      `json:"lab_sku"       yaml:"lab_sku"`
	URLs         []string    `json:"urls"          yaml:"urls"`
	ESXiHosts    []string    `json:"esxi_hosts"    yaml:"esxi_hosts"`
	VCenters     []string    `json:"vcenters"      yaml:"vcenters"`
	NSXManagers  []string    `json:"nsx_managers"  yaml:"nsx_managers"`
	SDDCManagers []string    `json:"sddc_managers" yaml:"sddc_managers"`
	VRAURLs      []string    `json:"vra_urls"      yaml:"vra_urls"`
	Credentials  Credentials `json:"credentials"   yaml:"credentials"`
}

// Credentials holds the lab-wide default usernames and the shared password.
type Credentials struct {
	Password    string `json:"password"      yaml:"password"`
	VCenterUser string `json:"vcenter_user"  yaml:"vcenter_user"`
	ESXiUser    string `json:"esxi_user"     yaml:"esxi_user"`
	LinuxUser   string `json:"linux_user"    yaml:"linux_user"`
	WindowsUser string `json:"windows_user"  yaml:"windows_user"`
}

// LoadTargets reads the targets file (or stdin when path is "-") and applies
// credential defaults.
func LoadTargets(path string) (*Targets, error) {
	data, err := fileutil.ReadFileOrStdin(path)
	if err != nil {
		return nil, fmt.Errorf("error reading targets file: %w", err)
	}

	var t Targets
	if err := fileutil.UnmarshalConfigData(data, &t, path); err != nil {
		return nil, fmt.Errorf("error parsing targets file: %w", err)
	}

	if t.Credentials.VCenterUser == "" {
		t.Credentials.VCenterUser = "administrator@vsphere.local"
	}
	if t.Credentials.ESXiUser == "" {
		t.Credentials.ESXiUser = "root"
	}
	if t.Credentials.LinuxUser == "" {
		t.Credentials.LinuxUser = "root"
	}
	if t.Credentials.WindowsUser == "" {
		t.Credentials.WindowsUser = "Administrator"
	}

	return &t, nil
}

// cleanEntries drops blank lines and #-comments and trims whitespace.
func cleanEntries(entries []string) []string {
	var out []string
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" || strings.HasPrefix(e, "#") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// hostPart strips any ":suffix" from a manifest entry, leaving the hostname.
func hostPart(entry string) string {
	return strings.TrimSpace(strings.SplitN(entry, ":", 2)[0])
}

// hostList extracts hostnames from manifest entries.
func hostList(entries []string) []string {
	var hosts []string
	for _, e := range cleanEntries(entries) {
		if h := hostPart(e); h != "" {
			hosts = append(hosts, h)
		}
	}
	return hosts
}

// URLEntry is one parsed line of the urls list.
type URLEntry struct {
	URL          string
	Description  string
	ExpectedText string
}

// DisplayName returns the description when present, the URL otherwise.
func (e URLEntry) DisplayName() string {
	if e.Description != "" {
		return e.Description
	}
	return e.URL
}

// ParseURLEntry splits a "url,description,expected_text" manifest line.
func ParseURLEntry(entry string) URLEntry {
	parts := strings.SplitN(entry, ",", 3)
	e := URLEntry{URL: strings.TrimSpace(parts[0])}
	if len(parts) > 1 {
		e.Description = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		e.ExpectedText = strings.TrimSpace(parts[2])
	}
	return e
}

// URLEntries returns the parsed URL list for accessibility checks, including
// the VRA URLs.
func (t *Targets) URLEntries() []URLEntry {
	var entries []URLEntry
	for _, e := range cleanEntries(t.URLs) {
		entries = append(entries, ParseURLEntry(e))
	}
	for _, e := range cleanEntries(t.VRAURLs) {
		entries = append(entries, ParseURLEntry(e))
	}
	return entries
}

// CertificateURLs returns every URL whose certificate must be validated: the
// configured URLs plus HTTPS endpoints for each ESXi host and NSX manager.
func (t *Targets) CertificateURLs() []string {
	var urls []string
	for _, e := range t.URLEntries() {
		urls = append(urls, e.URL)
	}
	for _, h := range hostList(t.ESXiHosts) {
		urls = append(urls, "https://"+h)
	}
	for _, h := range hostList(t.NSXManagers) {
		urls = append(urls, "https://"+h)
	}
	return urls
}

// ESXiHostnames returns the ESXi host list.
func (t *Targets) ESXiHostnames() []string {
	return hostList(t.ESXiHosts)
}

// VCenterHostnames returns the vCenter host list.
func (t *Targets) VCenterHostnames() []string {
	return hostList(t.VCenters)
}

// Account pairs a host with a user name.
type Account struct {
	Host string
	User string
}

// LinuxAccounts returns the SSH login account for every host reachable over
// SSH: ESXi hosts with the configured ESXi user, and the Linux-based vCenter
// appliances with the configured Linux user.
func (t *Targets) LinuxAccounts() []Account {
	var accounts []Account
	for _, h := range t.ESXiHostnames() {
		accounts = append(accounts, Account{Host: h, User: userOrRoot(t.Credentials.ESXiUser)})
	}
	for _, h := range t.VCenterHostnames() {
		accounts = append(accounts, Account{Host: h, User: userOrRoot(t.Credentials.LinuxUser)})
	}
	return accounts
}

func userOrRoot(user string) string {
	if user == "" {
		return "root"
	}
	return user
}

// PasswordAccounts fans the target hosts out into the per-host user accounts
// subject to password expiration checks: root on ESXi hosts and vCenters,
// root and admin on NSX managers, vcf/root/backup on SDDC managers. SDDC
// managers are also discovered from any configured URL mentioning
// "sddcmanager".
func (t *Targets) PasswordAccounts() []Account {
	var accounts []Account

	for _, h := range t.ESXiHostnames() {
		accounts = append(accounts, Account{Host: h, User: "root"})
	}
	for _, h := range t.VCenterHostnames() {
		accounts = append(accounts, Account{Host: h, User: "root"})
	}
	for _, h := range hostList(t.NSXManagers) {
		accounts = append(accounts,
			Account{Host: h, User: "root"},
			Account{Host: h, User: "admin"},
		)
	}

	sddc := hostList(t.SDDCManagers)
	for _, e := range t.URLEntries() {
		if !strings.Contains(strings.ToLower(e.URL), "sddcmanager") {
			continue
		}
		if h := hostFromURL(e.URL); h != "" && !containsString(sddc, h) {
			sddc = append(sddc, h)
		}
	}
	for _, h := range sddc {
		accounts = append(accounts,
			Account{Host: h, User: "vcf"},
			Account{Host: h, User: "root"},
			Account{Host: h, User: "backup"},
		)
	}

	return accounts
}

func hostFromURL(url string) string {
	if idx := strings.Index(url, "://"); idx >= 0 {
		url = url[idx+3:]
	}
	url = strings.SplitN(url, "/", 2)[0]
	return strings.SplitN(url, ":", 2)[0]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
