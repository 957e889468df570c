package vcenter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmware/govmomi/simulator"
	"github.com/vmware/govmomi/vim25"
)

func TestCollect(t *testing.T) {
	simulator.Test(func(ctx context.Context, vim *vim25.Client) {
		client := New(vim, "vcsa-01a.site-a.vcf.lab")

		vms, err := client.VMs(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, vms)
		for _, vm := range vms {
			assert.NotEmpty(t, vm.Name)
			assert.NotNil(t, vm.ExtraConfig)
		}

		clusters, err := client.Clusters(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, clusters)

		builds, err := client.HostBuilds(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, builds)
		assert.NotEmpty(t, builds[0].Version)

		datastores, err := client.Datastores(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, datastores)
		assert.True(t, datastores[0].Accessible)

		ntp, err := client.HostNTP(ctx)
		require.NoError(t, err)
		assert.Len(t, ntp, len(builds))

		inv, err := client.Inventory(ctx)
		require.NoError(t, err)
		assert.Equal(t, "vcsa-01a.site-a.vcf.lab", inv.VCenter)
		assert.Equal(t, len(vms), inv.VMs)
		assert.Equal(t, len(builds), inv.Hosts)
	})
}

func TestHostNTP_NoDateTimeInfo(t *testing.T) {
	simulator.Test(func(ctx context.Context, vim *vim25.Client) {
		client := New(vim, "vcsa-01a")

		// Simulator hosts carry no config.dateTimeInfo; collection must
		// still return every host, with an empty NTP server.
		ntp, err := client.HostNTP(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, ntp)
		for _, h := range ntp {
			assert.NotEmpty(t, h.Hostname)
			assert.Empty(t, h.Server)
		}
	})
}

func TestSetExtraConfig(t *testing.T) {
	simulator.Test(func(ctx context.Context, vim *vim25.Client) {
		client := New(vim, "vcsa-01a")

		vms, err := client.VMs(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, vms)

		err = client.SetExtraConfig(vms[0].Name, "uuid.action", "keep")
		require.NoError(t, err)

		after, err := client.VMs(ctx)
		require.NoError(t, err)
		for _, vm := range after {
			if vm.Name == vms[0].Name {
				assert.Equal(t, "keep", vm.ExtraConfig["uuid.action"])
			}
		}
	})
}

func TestSetExtraConfig_UnknownVM(t *testing.T) {
	simulator.Test(func(ctx context.Context, vim *vim25.Client) {
		client := New(vim, "vcsa-01a")

		err := client.SetExtraConfig("no-such-vm", "uuid.action", "keep")
		assert.Error(t, err)
	})
}
