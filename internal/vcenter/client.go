// Package vcenter collects check input data from a vCenter server using the
// vSphere SOAP API.
package vcenter

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/vmware/govmomi"
	"github.com/vmware/govmomi/vim25"
	"github.com/vmware/govmomi/vim25/soap"
	"github.com/vmware/govmomi/vim25/types"
)

// Client is a connected vCenter session scoped to one server.
type Client struct {
	vim    *vim25.Client
	host   string
	vmRefs map[string]types.ManagedObjectReference
	logout func(context.Context) error
}

// Connect logs in to a vCenter server. Lab vCenters use self-signed
// certificates, so verification is disabled; certificate validity is covered
// by the SSL checks.
func Connect(ctx context.Context, host, user, password string) (*Client, error) {
	u, err := soap.ParseURL(host)
	if err != nil {
		return nil, fmt.Errorf("parsing vCenter URL for %s: %w", host, err)
	}
	u.User = url.UserPassword(user, password)

	logrus.Debugf("connecting to vCenter %s as %s", host, user)

	govc, err := govmomi.NewClient(ctx, u, true)
	if err != nil {
		return nil, fmt.Errorf("connecting to vCenter %s: %w", host, err)
	}

	return &Client{
		vim:    govc.Client,
		host:   host,
		vmRefs: make(map[string]types.ManagedObjectReference),
		logout: govc.Logout,
	}, nil
}

// New wraps an already-authenticated vim25 client.
func New(vim *vim25.Client, host string) *Client {
	return &Client{
		vim:    vim,
		host:   host,
		vmRefs: make(map[string]types.ManagedObjectReference),
	}
}

// Host returns the vCenter hostname this client is connected to.
func (c *Client) Host() string {
	return c.host
}

// Close logs out of the vCenter session.
func (c *Client) Close(ctx context.Context) {
	if c.logout == nil {
		return
	}
	if err := c.logout(ctx); err != nil {
		logrus.Warnf("Failed to log out of %s: %v", c.host, err)
	}
}
