package vcenter

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/vmware/govmomi/license"
	"github.com/vmware/govmomi/object"
	"github.com/vmware/govmomi/view"
	"github.com/vmware/govmomi/vim25/mo"
	"github.com/vmware/govmomi/vim25/types"

	"github.com/hol-platform/labcheck/internal/licensecheck"
	"github.com/hol-platform/labcheck/internal/ntpcheck"
	"github.com/hol-platform/labcheck/internal/vspherecheck"
	"github.com/hol-platform/labcheck/internal/wincheck"
)

var windowsGuestIDPattern = regexp.MustCompile(`(?i)windows`)

func (c *Client) withView(ctx context.Context, kind []string, f func(*view.ContainerView) error) error {
	m := view.NewManager(c.vim)
	v, err := m.CreateContainerView(ctx, c.vim.ServiceContent.RootFolder, kind, true)
	if err != nil {
		return fmt.Errorf("creating container view: %w", err)
	}
	defer func() { _ = v.Destroy(ctx) }()
	return f(v)
}

// VMs retrieves every virtual machine, keeping the managed object references
// so the client can later fix extra config options.
func (c *Client) VMs(ctx context.Context) ([]vspherecheck.VM, error) {
	var machines []mo.VirtualMachine
	err := c.withView(ctx, []string{"VirtualMachine"}, func(v *view.ContainerView) error {
		return v.Retrieve(ctx, []string{"VirtualMachine"}, []string{"name", "config", "guest"}, &machines)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving VMs from %s: %w", c.host, err)
	}

	vms := make([]vspherecheck.VM, 0, len(machines))
	for _, m := range machines {
		c.vmRefs[m.Name] = m.Self

		vm := vspherecheck.VM{
			Name:        m.Name,
			ExtraConfig: make(map[string]string),
		}
		if m.Config != nil {
			vm.GuestID = m.Config.GuestId
			for _, base := range m.Config.ExtraConfig {
				if opt := base.GetOptionValue(); opt != nil {
					if s, ok := opt.Value.(string); ok {
						vm.ExtraConfig[opt.Key] = s
					}
				}
			}
			if alloc := m.Config.CpuAllocation; alloc != nil {
				if alloc.Reservation != nil {
					vm.CPUReservationMHz = *alloc.Reservation
				}
				if alloc.Shares != nil {
					vm.CPUSharesLevel = string(alloc.Shares.Level)
				}
			}
			if alloc := m.Config.MemoryAllocation; alloc != nil {
				if alloc.Reservation != nil {
					vm.MemoryReservationMB = *alloc.Reservation
				}
				if alloc.Shares != nil {
					vm.MemorySharesLevel = string(alloc.Shares.Level)
				}
			}
		}
		vms = append(vms, vm)
	}
	return vms, nil
}

// WindowsHosts returns the powered Windows VMs with their guest IP addresses.
func (c *Client) WindowsHosts(ctx context.Context) ([]wincheck.Host, error) {
	var machines []mo.VirtualMachine
	err := c.withView(ctx, []string{"VirtualMachine"}, func(v *view.ContainerView) error {
		return v.Retrieve(ctx, []string{"VirtualMachine"}, []string{"name", "config.guestId", "guest"}, &machines)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving Windows VMs from %s: %w", c.host, err)
	}

	var hosts []wincheck.Host
	for _, m := range machines {
		if m.Config == nil || !windowsGuestIDPattern.MatchString(m.Config.GuestId) {
			continue
		}
		host := wincheck.Host{Name: m.Name, GuestID: m.Config.GuestId}
		if m.Guest != nil {
			host.IP = m.Guest.IpAddress
		}
		hosts = append(hosts, host)
	}
	return hosts, nil
}

// Clusters retrieves DRS and HA configuration for every cluster.
func (c *Client) Clusters(ctx context.Context) ([]vspherecheck.Cluster, error) {
	var clusters []mo.ClusterComputeResource
	err := c.withView(ctx, []string{"ClusterComputeResource"}, func(v *view.ContainerView) error {
		return v.Retrieve(ctx, []string{"ClusterComputeResource"}, []string{"name", "configuration"}, &clusters)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving clusters from %s: %w", c.host, err)
	}

	out := make([]vspherecheck.Cluster, 0, len(clusters))
	for _, cl := range clusters {
		cluster := vspherecheck.Cluster{
			Name:        cl.Name,
			DRSBehavior: string(cl.Configuration.DrsConfig.DefaultVmBehavior),
		}
		if cl.Configuration.DrsConfig.Enabled != nil {
			cluster.DRSEnabled = *cl.Configuration.DrsConfig.Enabled
		}
		if cl.Configuration.DasConfig.Enabled != nil {
			cluster.HAEnabled = *cl.Configuration.DasConfig.Enabled
		}
		out = append(out, cluster)
	}
	return out, nil
}

// HostBuilds retrieves the product version and build of every ESXi host.
func (c *Client) HostBuilds(ctx context.Context) ([]vspherecheck.HostBuild, error) {
	var hosts []mo.HostSystem
	err := c.withView(ctx, []string{"HostSystem"}, func(v *view.ContainerView) error {
		return v.Retrieve(ctx, []string{"HostSystem"}, []string{"name", "config.product"}, &hosts)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving host builds from %s: %w", c.host, err)
	}

	out := make([]vspherecheck.HostBuild, 0, len(hosts))
	for _, h := range hosts {
		if h.Config == nil {
			continue
		}
		out = append(out, vspherecheck.HostBuild{
			Name:    h.Name,
			Version: h.Config.Product.Version,
			Build:   h.Config.Product.Build,
		})
	}
	return out, nil
}

// HostNTP retrieves the NTP service state of every ESXi host.
func (c *Client) HostNTP(ctx context.Context) ([]ntpcheck.HostNTP, error) {
	var hosts []mo.HostSystem
	err := c.withView(ctx, []string{"HostSystem"}, func(v *view.ContainerView) error {
		return v.Retrieve(ctx, []string{"HostSystem"}, []string{"name", "config.service", "config.dateTimeInfo"}, &hosts)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving host NTP state from %s: %w", c.host, err)
	}

	out := make([]ntpcheck.HostNTP, 0, len(hosts))
	for _, h := range hosts {
		state := ntpcheck.HostNTP{Hostname: h.Name}
		if h.Config != nil {
			if h.Config.Service != nil {
				for _, svc := range h.Config.Service.Service {
					if svc.Key == "ntpd" {
						state.Running = svc.Running
						state.Policy = svc.Policy
					}
				}
			}
			if dti := h.Config.DateTimeInfo; dti != nil {
				if ntp := dti.NtpConfig; ntp != nil && len(ntp.Server) > 0 {
					state.Server = ntp.Server[0]
				}
			}
		}
		out = append(out, state)
	}
	return out, nil
}

// Datastores retrieves the summary of every datastore.
func (c *Client) Datastores(ctx context.Context) ([]vspherecheck.Datastore, error) {
	var datastores []mo.Datastore
	err := c.withView(ctx, []string{"Datastore"}, func(v *view.ContainerView) error {
		return v.Retrieve(ctx, []string{"Datastore"}, []string{"name", "summary"}, &datastores)
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving datastores from %s: %w", c.host, err)
	}

	const gb = 1 << 30
	out := make([]vspherecheck.Datastore, 0, len(datastores))
	for _, ds := range datastores {
		out = append(out, vspherecheck.Datastore{
			Name:       ds.Summary.Name,
			Type:       ds.Summary.Type,
			Accessible: ds.Summary.Accessible,
			CapacityGB: float64(ds.Summary.Capacity) / gb,
			FreeGB:     float64(ds.Summary.FreeSpace) / gb,
		})
	}
	return out, nil
}

// Inventory counts the managed objects visible to this vCenter.
func (c *Client) Inventory(ctx context.Context) (vspherecheck.Inventory, error) {
	inv := vspherecheck.Inventory{VCenter: c.host}

	counts := []struct {
		kind  string
		count *int
	}{
		{"HostSystem", &inv.Hosts},
		{"VirtualMachine", &inv.VMs},
		{"ClusterComputeResource", &inv.Clusters},
		{"Datastore", &inv.Datastores},
		{"Network", &inv.Networks},
	}

	for _, entry := range counts {
		err := c.withView(ctx, []string{entry.kind}, func(v *view.ContainerView) error {
			refs, err := v.Find(ctx, []string{entry.kind}, nil)
			if err != nil {
				return err
			}
			*entry.count = len(refs)
			return nil
		})
		if err != nil {
			return inv, fmt.Errorf("counting %s objects on %s: %w", entry.kind, c.host, err)
		}
	}

	return inv, nil
}

// Licenses retrieves license assignments plus unassigned licenses from the
// license manager.
func (c *Client) Licenses(ctx context.Context) ([]licensecheck.License, error) {
	lm := license.NewManager(c.vim)

	am, err := lm.AssignmentManager(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting license assignment manager on %s: %w", c.host, err)
	}

	assignments, err := am.QueryAssigned(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("querying license assignments on %s: %w", c.host, err)
	}

	assignedKeys := make(map[string]bool)
	var licenses []licensecheck.License
	for _, a := range assignments {
		assignedKeys[a.AssignedLicense.LicenseKey] = true
		licenses = append(licenses, licensecheck.License{
			Key:        a.AssignedLicense.LicenseKey,
			Name:       a.AssignedLicense.Name,
			EntityName: a.EntityDisplayName,
			Expiration: licenseExpiration(a.AssignedLicense),
			Assigned:   true,
		})
	}

	all, err := lm.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing licenses on %s: %w", c.host, err)
	}
	for _, info := range all {
		if assignedKeys[info.LicenseKey] {
			continue
		}
		licenses = append(licenses, licensecheck.License{
			Key:        info.LicenseKey,
			Name:       info.Name,
			Expiration: licenseExpiration(info),
			Assigned:   false,
		})
	}

	return licenses, nil
}

func licenseExpiration(info types.LicenseManagerLicenseInfo) *time.Time {
	for _, prop := range info.Properties {
		if prop.Key != "expirationDate" {
			continue
		}
		if t, ok := prop.Value.(time.Time); ok {
			return &t
		}
	}
	return nil
}

// SetExtraConfig reconfigures a VM's extra config option. The VM must have
// been seen by a prior VMs call.
func (c *Client) SetExtraConfig(vmName, key, value string) error {
	ref, ok := c.vmRefs[vmName]
	if !ok {
		return fmt.Errorf("unknown VM %q", vmName)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	vm := object.NewVirtualMachine(c.vim, ref)
	task, err := vm.Reconfigure(ctx, types.VirtualMachineConfigSpec{
		ExtraConfig: []types.BaseOptionValue{
			&types.OptionValue{Key: key, Value: value},
		},
	})
	if err != nil {
		return fmt.Errorf("reconfiguring %s: %w", vmName, err)
	}
	if err := task.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for reconfigure of %s: %w", vmName, err)
	}
	return nil
}
