// Package vspherecheck validates vSphere inventory configuration: VM extra
// config, VM resource settings, cluster DRS/HA, ESXi build consistency, and
// datastore health.
package vspherecheck

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/report"
)

// VM is the subset of virtual machine state the checks operate on.
type VM struct {
	Name                string
	GuestID             string
	ExtraConfig         map[string]string
	CPUReservationMHz   int64
	MemoryReservationMB int64
	CPUSharesLevel      string
	MemorySharesLevel   string
}

// Cluster is the subset of cluster configuration the checks operate on.
type Cluster struct {
	Name        string
	DRSEnabled  bool
	DRSBehavior string
	HAEnabled   bool
}

// HostBuild is an ESXi host's product version and build number.
type HostBuild struct {
	Name    string
	Version string
	Build   string
}

// Datastore is the subset of datastore summary state the checks operate on.
type Datastore struct {
	Name       string
	Type       string
	Accessible bool
	CapacityGB float64
	FreeGB     float64
}

// Inventory is the per-vCenter object census reported as informational
// results.
type Inventory struct {
	VCenter    string
	Hosts      int
	VMs        int
	Clusters   int
	Datastores int
	Networks   int
}

// Fixer applies VM extra config options. A nil Fixer means report-only mode.
type Fixer interface {
	SetExtraConfig(vmName, key, value string) error
}

const (
	keyUUIDAction = "uuid.action"
	keyTypeDelay  = "keyboard.typematicMinDelay"
	keyAutolock   = "tools.guest.desktop.autolock"
)

var (
	windowsGuestPattern = regexp.MustCompile(`(?i)windows`)
	linuxGuestPattern   = regexp.MustCompile(`(?i)linux|ubuntu|debian|centos|sles|suse|asianux|novell|redhat|photon|rhel|other`)
)

// CheckVMConfiguration validates the extra config options every lab VM must
// carry and, when a fixer is provided, applies the corrections. System VMs
// are skipped entirely.
func CheckVMConfiguration(vms []VM, fixer Fixer) []report.CheckResult {
	if len(vms) == 0 {
		return []report.CheckResult{{
			Name:    "VM Configuration",
			Status:  report.StatusSkipped,
			Message: "No VMs to check",
		}}
	}

	var results []report.CheckResult
	for _, vm := range vms {
		if labenv.ShouldSkipVM(vm.Name) {
			continue
		}
		results = append(results, checkSingleVM(vm, fixer))
	}
	return results
}

func checkSingleVM(vm VM, fixer Fixer) report.CheckResult {
	uuidAction := vm.ExtraConfig[keyUUIDAction]
	typeDelay := vm.ExtraConfig[keyTypeDelay]
	autolock := vm.ExtraConfig[keyAutolock]

	var issues, fixes []string

	// uuid.action=keep suppresses the "moved or copied" question after a
	// vPod deploy.
	if uuidAction != "keep" {
		issues = append(issues, fmt.Sprintf("uuid.action is '%s' (should be 'keep')", uuidAction))
		if tryFix(fixer, vm.Name, keyUUIDAction, "keep") {
			fixes = append(fixes, "uuid.action fixed")
		}
	}

	if windowsGuestPattern.MatchString(vm.GuestID) && autolock != "FALSE" {
		issues = append(issues, fmt.Sprintf("tools.guest.desktop.autolock is '%s' (should be 'FALSE')", autolock))
		if tryFix(fixer, vm.Name, keyAutolock, "FALSE") {
			fixes = append(fixes, "autolock fixed")
		}
	}

	if linuxGuestPattern.MatchString(vm.GuestID) && typeDelay != "2000000" {
		issues = append(issues, fmt.Sprintf("keyboard.typematicMinDelay is '%s' (should be '2000000')", typeDelay))
		if tryFix(fixer, vm.Name, keyTypeDelay, "2000000") {
			fixes = append(fixes, "typematicMinDelay fixed")
		}
	}

	result := report.CheckResult{
		Name: fmt.Sprintf("VM Config: %s", vm.Name),
		Details: map[string]any{
			"vm_name":     vm.Name,
			"guest_id":    vm.GuestID,
			"uuid_action": uuidAction,
			"type_delay":  typeDelay,
			"autolock":    autolock,
		},
	}

	switch {
	case len(issues) == 0:
		result.Status = report.StatusPass
		result.Message = "VM configuration correct"
	case len(fixes) > 0:
		result.Status = report.StatusFixed
		result.Message = fmt.Sprintf("Fixed: %s", strings.Join(fixes, ", "))
	default:
		result.Status = report.StatusFail
		result.Message = strings.Join(issues, "; ")
	}

	return result
}

func tryFix(fixer Fixer, vmName, key, value string) bool {
	if fixer == nil {
		return false
	}
	return fixer.SetExtraConfig(vmName, key, value) == nil
}

// CheckVMResources flags VMs with reservations or non-default shares. Nested
// labs oversubscribe the outer hosts, so reservations starve neighbours.
func CheckVMResources(vms []VM) []report.CheckResult {
	if len(vms) == 0 {
		return []report.CheckResult{{
			Name:    "VM Resources",
			Status:  report.StatusSkipped,
			Message: "No VMs to check",
		}}
	}

	var results []report.CheckResult
	for _, vm := range vms {
		if labenv.ShouldSkipVM(vm.Name) {
			continue
		}
		results = append(results, checkVMResources(vm))
	}
	return results
}

func checkVMResources(vm VM) report.CheckResult {
	var issues []string

	if vm.CPUReservationMHz > 0 {
		issues = append(issues, fmt.Sprintf("CPU reservation is %d MHz (should be 0)", vm.CPUReservationMHz))
	}
	if vm.MemoryReservationMB > 0 {
		issues = append(issues, fmt.Sprintf("Memory reservation is %d MB (should be 0)", vm.MemoryReservationMB))
	}
	if vm.CPUSharesLevel != "" && vm.CPUSharesLevel != "normal" {
		issues = append(issues, fmt.Sprintf("CPU shares level is '%s' (should be 'normal')", vm.CPUSharesLevel))
	}
	if vm.MemorySharesLevel != "" && vm.MemorySharesLevel != "normal" {
		issues = append(issues, fmt.Sprintf("Memory shares level is '%s' (should be 'normal')", vm.MemorySharesLevel))
	}

	result := report.CheckResult{
		Name: fmt.Sprintf("VM Resources: %s", vm.Name),
		Details: map[string]any{
			"vm_name":             vm.Name,
			"cpu_reservation_mhz": vm.CPUReservationMHz,
			"mem_reservation_mb":  vm.MemoryReservationMB,
		},
	}

	if len(issues) > 0 {
		result.Status = report.StatusWarn
		result.Message = strings.Join(issues, "; ")
	} else {
		result.Status = report.StatusPass
		result.Message = "No reservations, default shares"
	}

	return result
}

// CheckClusters validates DRS and HA settings on every cluster. DRS in fully
// automated mode and HA both generate load labs cannot afford.
func CheckClusters(clusters []Cluster) []report.CheckResult {
	if len(clusters) == 0 {
		return []report.CheckResult{{
			Name:    "Cluster Checks",
			Status:  report.StatusSkipped,
			Message: "No clusters to check",
		}}
	}

	var results []report.CheckResult
	for _, cluster := range clusters {
		results = append(results, checkClusterDRS(cluster), checkClusterHA(cluster))
	}
	return results
}

func checkClusterDRS(cluster Cluster) report.CheckResult {
	name := fmt.Sprintf("DRS: %s", cluster.Name)

	if !cluster.DRSEnabled {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusPass,
			Message: "DRS disabled (minimizes I/O)",
			Details: map[string]any{"enabled": false},
		}
	}

	if cluster.DRSBehavior == "fullyAutomated" {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: "DRS is FullyAutomated - should be PartiallyAutomated",
			Details: map[string]any{"enabled": true, "behavior": cluster.DRSBehavior},
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: fmt.Sprintf("DRS is %s", cluster.DRSBehavior),
		Details: map[string]any{"enabled": true, "behavior": cluster.DRSBehavior},
	}
}

func checkClusterHA(cluster Cluster) report.CheckResult {
	name := fmt.Sprintf("HA: %s", cluster.Name)

	if cluster.HAEnabled {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: "HA is enabled - should be disabled for labs",
			Details: map[string]any{"enabled": true},
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: "HA disabled",
		Details: map[string]any{"enabled": false},
	}
}

// CheckESXiBuilds verifies that every ESXi host runs the same product build.
// Mixed builds get a warning plus an informational result per build.
func CheckESXiBuilds(hosts []HostBuild) []report.CheckResult {
	if len(hosts) == 0 {
		return []report.CheckResult{{
			Name:    "ESXi Builds",
			Status:  report.StatusSkipped,
			Message: "No ESXi hosts found",
		}}
	}

	builds := make(map[string][]string)
	for _, h := range hosts {
		full := fmt.Sprintf("%s (build %s)", h.Version, h.Build)
		builds[full] = append(builds[full], h.Name)
	}

	if len(builds) == 1 {
		for build, names := range builds {
			return []report.CheckResult{{
				Name:    "ESXi Builds",
				Status:  report.StatusPass,
				Message: fmt.Sprintf("All %d hosts are running %s", len(names), build),
				Details: map[string]any{"build": build, "host_count": len(names)},
			}}
		}
	}

	buildKeys := make([]string, 0, len(builds))
	for build := range builds {
		buildKeys = append(buildKeys, build)
	}
	sort.Strings(buildKeys)

	results := []report.CheckResult{{
		Name:    "ESXi Builds",
		Status:  report.StatusWarn,
		Message: fmt.Sprintf("Inconsistent builds: %d different versions found", len(builds)),
		Details: map[string]any{"builds": builds},
	}}

	for _, build := range buildKeys {
		names := builds[build]
		shown := names
		suffix := ""
		if len(shown) > 3 {
			shown = shown[:3]
			suffix = "..."
		}
		results = append(results, report.CheckResult{
			Name:    fmt.Sprintf("ESXi Build: %s", build),
			Status:  report.StatusInfo,
			Message: fmt.Sprintf("%d host(s): %s%s", len(names), strings.Join(shown, ", "), suffix),
			Details: map[string]any{"build": build, "hosts": names},
		})
	}

	return results
}

// CheckDatastores validates datastore accessibility and usage. Duplicate
// datastore names (shared storage seen by multiple vCenters) are checked once.
func CheckDatastores(datastores []Datastore) []report.CheckResult {
	if len(datastores) == 0 {
		return []report.CheckResult{{
			Name:    "Datastore Checks",
			Status:  report.StatusSkipped,
			Message: "No datastores found",
		}}
	}

	var results []report.CheckResult
	checked := make(map[string]bool)

	for _, ds := range datastores {
		if checked[ds.Name] {
			continue
		}
		checked[ds.Name] = true
		results = append(results, checkDatastore(ds))
	}
	return results
}

func checkDatastore(ds Datastore) report.CheckResult {
	name := fmt.Sprintf("Datastore: %s", ds.Name)

	if !ds.Accessible {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusFail,
			Message: "Datastore not accessible",
			Details: map[string]any{"name": ds.Name, "accessible": false},
		}
	}

	usedPct := 0.0
	if ds.CapacityGB > 0 {
		usedPct = (ds.CapacityGB - ds.FreeGB) / ds.CapacityGB * 100
	}

	details := map[string]any{
		"name":        ds.Name,
		"type":        ds.Type,
		"capacity_gb": ds.CapacityGB,
		"free_gb":     ds.FreeGB,
		"used_pct":    usedPct,
	}

	if usedPct > 90 {
		return report.CheckResult{
			Name:    name,
			Status:  report.StatusWarn,
			Message: fmt.Sprintf("Accessible but %.1f%% full (%.1f GB free)", usedPct, ds.FreeGB),
			Details: details,
		}
	}

	return report.CheckResult{
		Name:    name,
		Status:  report.StatusPass,
		Message: fmt.Sprintf("Accessible (%.1f%% used, %.1f GB free)", usedPct, ds.FreeGB),
		Details: details,
	}
}

// CheckInventory reports an informational object census per vCenter.
func CheckInventory(inventories []Inventory) []report.CheckResult {
	if len(inventories) == 0 {
		return []report.CheckResult{{
			Name:    "Inventory",
			Status:  report.StatusSkipped,
			Message: "No vCenters to inventory",
		}}
	}

	results := make([]report.CheckResult, 0, len(inventories))
	for _, inv := range inventories {
		results = append(results, report.CheckResult{
			Name:   fmt.Sprintf("Inventory: %s", inv.VCenter),
			Status: report.StatusInfo,
			Message: fmt.Sprintf("%d hosts, %d VMs, %d clusters, %d datastores, %d networks",
				inv.Hosts, inv.VMs, inv.Clusters, inv.Datastores, inv.Networks),
			Details: map[string]any{
				"vcenter":    inv.VCenter,
				"hosts":      inv.Hosts,
				"vms":        inv.VMs,
				"clusters":   inv.Clusters,
				"datastores": inv.Datastores,
				"networks":   inv.Networks,
			},
		})
	}
	return results
}
