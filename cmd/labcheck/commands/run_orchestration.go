package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/hol-platform/labcheck/internal/labenv"
	"github.com/hol-platform/labcheck/internal/licensecheck"
	"github.com/hol-platform/labcheck/internal/linuxcheck"
	"github.com/hol-platform/labcheck/internal/ntpcheck"
	"github.com/hol-platform/labcheck/internal/output"
	"github.com/hol-platform/labcheck/internal/probe"
	"github.com/hol-platform/labcheck/internal/report"
	"github.com/hol-platform/labcheck/internal/sshexec"
	"github.com/hol-platform/labcheck/internal/sslcheck"
	"github.com/hol-platform/labcheck/internal/urlcheck"
	"github.com/hol-platform/labcheck/internal/vcenter"
	"github.com/hol-platform/labcheck/internal/vspherecheck"
	"github.com/hol-platform/labcheck/internal/wincheck"
	"github.com/hol-platform/labcheck/internal/winexec"
)

// runContext carries everything a check producer needs: the parsed targets,
// the report being built, and the transport adapters.
type runContext struct {
	targets *labenv.Targets
	rep     *report.Report
	prober  probe.Prober
	linux   linuxcheck.Runner
	windows wincheck.Runner
	clients []*vcenter.Client
	fix     bool
}

// checkProducer is one named check group. category is where skip markers and
// synthetic failures land.
type checkProducer struct {
	name     string
	category report.Category
	run      func(*runContext)
}

var checkProducers = []checkProducer{
	{"ssl", report.CategorySSL, checkSSL},
	{"license", report.CategoryLicense, checkLicenses},
	{"ntp", report.CategoryNTP, checkNTP},
	{"url", report.CategoryURL, checkURLs},
	{"linux", report.CategoryLinux, checkLinux},
	{"windows", report.CategoryWindows, checkWindows},
	{"vsphere", report.CategoryVSphere, checkVSphere},
	{"inventory", report.CategoryInventory, checkInventory},
}

func runValidation() error {
	skipMap, err := parseCheckNameList(skipChecks)
	if err != nil {
		return err
	}

	targets, err := labenv.LoadTargets(targetsFile)
	if err != nil {
		return fmt.Errorf("failed to load targets: %w", err)
	}
	if labSKU != "" {
		targets.LabSKU = labSKU
	}

	rep := report.New(targets.LabSKU)
	minExp, maxExp := labenv.ExpirationWindow(targets.LabSKU)
	rep.MinExpDate = minExp.Format("2006-01-02")
	rep.MaxExpDate = maxExp.Format("2006-01-02")

	rc := &runContext{
		targets: targets,
		rep:     rep,
		prober:  probe.TCPProber{},
		linux:   &sshexec.Executor{Password: targets.Credentials.Password},
		windows: &winexec.Executor{User: targets.Credentials.WindowsUser, Password: targets.Credentials.Password},
		fix:     !reportOnly,
	}

	if needsVCenter(skipMap) {
		rc.clients = connectVCenters(rep, targets)
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			for _, client := range rc.clients {
				client.Close(ctx)
			}
		}()
	}

	if OutputFmt == output.FormatText {
		fmt.Println(headerStyle.Render(fmt.Sprintf("Validating lab %s (expiration window %s to %s)",
			rep.LabSKU, rep.MinExpDate, rep.MaxExpDate)))
		fmt.Println()
	}

	for _, producer := range checkProducers {
		if skipMap[producer.name] {
			rep.Append(producer.category, report.CheckResult{
				Name:    producer.category.Title(),
				Status:  report.StatusSkipped,
				Message: "Skipped by --skip",
			})
			continue
		}

		log.Debugf("Running check: %s", producer.name)
		executeProducer(rc, producer)
	}

	rep.CalculateOverallStatus()

	switch rep.OverallStatus {
	case report.StatusFail:
		UpdateResult(ValidationFailed)
	case report.StatusWarn:
		UpdateResult(ValidationWarned)
	default:
		UpdateResult(ValidationSucceeded)
	}

	if OutputFmt == output.FormatJSON {
		if err := output.RenderJSON(os.Stdout, rep.ToDocument()); err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
	} else {
		renderReportText(rep)
	}

	if err := rep.WriteFiles(outDir, withPDF); err != nil {
		return fmt.Errorf("failed to write report files: %w", err)
	}
	if htmlFile != "" {
		if err := writeHTMLTo(rep, htmlFile); err != nil {
			return fmt.Errorf("failed to write HTML report: %w", err)
		}
	}

	return nil
}

// executeProducer runs one producer, converting a panic into a synthetic
// failure in the producer's category so one broken check cannot abort the run.
func executeProducer(rc *runContext, producer checkProducer) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Check %s panicked: %v", producer.name, r)
			rc.rep.Append(producer.category,
				report.SyntheticFailure(producer.category.Title(), fmt.Errorf("check panicked: %v", r)))
		}
	}()

	producer.run(rc)
}

// needsVCenter reports whether any producer requiring a vCenter session will
// run.
func needsVCenter(skipMap map[string]bool) bool {
	for _, name := range []string{"license", "ntp", "windows", "vsphere", "inventory"} {
		if !skipMap[name] {
			return true
		}
	}
	return false
}

// connectVCenters logs in to every configured vCenter. Connection failures
// become synthetic failures in the vSphere category; the remaining checks
// still run against the vCenters that did connect.
func connectVCenters(rep *report.Report, targets *labenv.Targets) []*vcenter.Client {
	var clients []*vcenter.Client
	for _, host := range targets.VCenterHostnames() {
		ctx, cancel := context.WithTimeout(context.Background(), labenv.TimeoutVCenter)
		client, err := vcenter.Connect(ctx, host, targets.Credentials.VCenterUser, targets.Credentials.Password)
		cancel()
		if err != nil {
			log.Errorf("Failed to connect to vCenter %s: %v", host, err)
			rep.Append(report.CategoryVSphere,
				report.SyntheticFailure(fmt.Sprintf("vCenter Connection: %s", host), err))
			continue
		}
		clients = append(clients, client)
	}
	return clients
}

func collectCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), labenv.TimeoutVCenter)
}

func checkSSL(rc *runContext) {
	results := sslcheck.CheckCertificates(rc.targets.CertificateURLs(), sslcheck.TLSFetcher{}, time.Now())
	rc.rep.Append(report.CategorySSL, results...)
}

func checkLicenses(rc *runContext) {
	if len(rc.clients) == 0 {
		rc.rep.Append(report.CategoryLicense, report.CheckResult{
			Name:    "License Checks",
			Status:  report.StatusSkipped,
			Message: "No vCenter connection available",
		})
		return
	}

	for _, client := range rc.clients {
		ctx, cancel := collectCtx()
		licenses, err := client.Licenses(ctx)
		cancel()
		if err != nil {
			rc.rep.Append(report.CategoryLicense,
				report.SyntheticFailure(fmt.Sprintf("License Checks: %s", client.Host()), err))
			continue
		}
		rc.rep.Append(report.CategoryLicense, licensecheck.CheckLicenses(licenses, time.Now())...)
	}
}

func checkNTP(rc *runContext) {
	var hosts []ntpcheck.HostNTP
	for _, client := range rc.clients {
		ctx, cancel := collectCtx()
		state, err := client.HostNTP(ctx)
		cancel()
		if err != nil {
			rc.rep.Append(report.CategoryNTP,
				report.SyntheticFailure(fmt.Sprintf("NTP Checks: %s", client.Host()), err))
			continue
		}
		hosts = append(hosts, state...)
	}
	rc.rep.Append(report.CategoryNTP, ntpcheck.CheckHosts(hosts)...)
}

func checkURLs(rc *runContext) {
	client := urlcheck.NewClient(labenv.TimeoutURL)
	results := urlcheck.CheckURLs(rc.targets.URLEntries(), client)
	rc.rep.Append(report.CategoryURL, results...)
}

func checkLinux(rc *runContext) {
	accounts := rc.targets.LinuxAccounts()
	rc.rep.Append(report.CategoryLinux, linuxcheck.CheckMachines(accounts, rc.prober, rc.linux)...)
	rc.rep.Append(report.CategoryLinux, linuxcheck.CheckTimeSync(accounts, rc.linux, time.Now())...)
	rc.rep.Append(report.CategoryPasswordExpiration,
		linuxcheck.CheckPasswordExpirations(rc.targets.PasswordAccounts(),
			rc.targets.Credentials.LinuxUser, rc.linux, time.Now())...)
}

func checkWindows(rc *runContext) {
	var hosts []wincheck.Host
	for _, client := range rc.clients {
		ctx, cancel := collectCtx()
		found, err := client.WindowsHosts(ctx)
		cancel()
		if err != nil {
			rc.rep.Append(report.CategoryWindows,
				report.SyntheticFailure(fmt.Sprintf("Windows Checks: %s", client.Host()), err))
			continue
		}
		hosts = append(hosts, found...)
	}
	rc.rep.Append(report.CategoryWindows, wincheck.CheckMachines(hosts, rc.prober, rc.windows)...)
}

func checkVSphere(rc *runContext) {
	if len(rc.clients) == 0 {
		rc.rep.Append(report.CategoryVSphere, report.CheckResult{
			Name:    "vSphere Checks",
			Status:  report.StatusSkipped,
			Message: "No vCenter connection available",
		})
		return
	}

	var allVMs []vspherecheck.VM
	var allClusters []vspherecheck.Cluster
	var allBuilds []vspherecheck.HostBuild
	var allDatastores []vspherecheck.Datastore

	for _, client := range rc.clients {
		ctx, cancel := collectCtx()
		vms, err := client.VMs(ctx)
		if err == nil {
			allVMs = append(allVMs, vms...)
			var fixer vspherecheck.Fixer
			if rc.fix {
				fixer = client
			}
			rc.rep.Append(report.CategoryVMConfig, vspherecheck.CheckVMConfiguration(vms, fixer)...)
		} else {
			rc.rep.Append(report.CategoryVMConfig,
				report.SyntheticFailure(fmt.Sprintf("VM Configuration: %s", client.Host()), err))
		}

		clusters, err := client.Clusters(ctx)
		if err == nil {
			allClusters = append(allClusters, clusters...)
		} else {
			rc.rep.Append(report.CategoryVSphere,
				report.SyntheticFailure(fmt.Sprintf("Cluster Checks: %s", client.Host()), err))
		}

		builds, err := client.HostBuilds(ctx)
		if err == nil {
			allBuilds = append(allBuilds, builds...)
		} else {
			rc.rep.Append(report.CategoryVSphere,
				report.SyntheticFailure(fmt.Sprintf("ESXi Build Checks: %s", client.Host()), err))
		}

		datastores, err := client.Datastores(ctx)
		if err == nil {
			allDatastores = append(allDatastores, datastores...)
		} else {
			rc.rep.Append(report.CategoryVSphere,
				report.SyntheticFailure(fmt.Sprintf("Datastore Checks: %s", client.Host()), err))
		}
		cancel()
	}

	rc.rep.Append(report.CategoryVMResource, vspherecheck.CheckVMResources(allVMs)...)
	rc.rep.Append(report.CategoryVSphere, vspherecheck.CheckClusters(allClusters)...)
	rc.rep.Append(report.CategoryVSphere, vspherecheck.CheckESXiBuilds(allBuilds)...)
	rc.rep.Append(report.CategoryVSphere, vspherecheck.CheckDatastores(allDatastores)...)
}

func checkInventory(rc *runContext) {
	var inventories []vspherecheck.Inventory
	for _, client := range rc.clients {
		ctx, cancel := collectCtx()
		inv, err := client.Inventory(ctx)
		cancel()
		if err != nil {
			rc.rep.Append(report.CategoryInventory,
				report.SyntheticFailure(fmt.Sprintf("Inventory: %s", client.Host()), err))
			continue
		}
		inventories = append(inventories, inv)
	}
	rc.rep.Append(report.CategoryInventory, vspherecheck.CheckInventory(inventories)...)
}

func writeHTMLTo(rep *report.Report, path string) error {
	f, err := os.Create(path) // #nosec G304 -- path is an operator-supplied flag
	if err != nil {
		return err
	}
	defer f.Close()
	return rep.WriteHTML(f)
}
