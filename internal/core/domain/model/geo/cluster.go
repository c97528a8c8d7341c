package geo

import (
	"errors"
	"fmt"

	"herdshare/internal/core/domain/model/kernel"
	"herdshare/internal/pkg/errs"
)

// ErrClusterIsNotConstructed is returned when a Cluster was not created
// through the NewCluster factory method.
var ErrClusterIsNotConstructed = errors.New(
	"Cluster must be created via NewCluster constructor")

// Cluster is a serviced geographic area identified by a set of 3-digit ZIP
// prefixes. A buyer's ZIP belongs to a cluster when its first three digits
// match any of the cluster's prefixes.
type Cluster struct {
	id             kernel.UUID
	name           string
	region         string
	zipPrefixes    []string
	centerLat      float64
	centerLng      float64
	radiusMiles    float64
	tier           DensityTier
	surchargePerLb int64
	active         bool

	isConstructed bool
}

// NewCluster creates an active cluster. surchargePerLb of zero falls back to
// the tier's default surcharge.
func NewCluster(
	id kernel.UUID,
	name string,
	region string,
	zipPrefixes []string,
	centerLat float64,
	centerLng float64,
	radiusMiles float64,
	tier DensityTier,
	surchargePerLb int64,
) (*Cluster, error) {
	c := &Cluster{
		region:        region,
		centerLat:     centerLat,
		centerLng:     centerLng,
		radiusMiles:   radiusMiles,
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setZipPrefixes(zipPrefixes),
		c.setTier(tier),
	); err != nil {
		return nil, err
	}

	if surchargePerLb < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("surcharge per lb",
			fmt.Errorf("%d is negative", surchargePerLb))
	}
	if surchargePerLb == 0 {
		surchargePerLb = tier.DefaultSurchargePerLb()
	}
	c.surchargePerLb = surchargePerLb

	return c, nil
}

// RestoreCluster reconstructs a Cluster from persistence.
func RestoreCluster(
	id kernel.UUID,
	name string,
	region string,
	zipPrefixes []string,
	centerLat float64,
	centerLng float64,
	radiusMiles float64,
	tier DensityTier,
	surchargePerLb int64,
	active bool,
) (*Cluster, error) {
	c, err := NewCluster(id, name, region, zipPrefixes, centerLat, centerLng, radiusMiles, tier, surchargePerLb)
	if err != nil {
		return nil, err
	}
	c.active = active
	return c, nil
}

// Validate ensures the Cluster was created through a constructor.
func (c *Cluster) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrClusterIsNotConstructed
	}
	return nil
}

// ID returns the cluster's unique identifier.
func (c *Cluster) ID() kernel.UUID { return c.id }

// Name returns the cluster's display name.
func (c *Cluster) Name() string { return c.name }

// Region returns the broader region label the cluster belongs to.
func (c *Cluster) Region() string { return c.region }

// ZipPrefixes returns the 3-digit ZIP prefixes the cluster serves.
func (c *Cluster) ZipPrefixes() []string {
	out := make([]string, len(c.zipPrefixes))
	copy(out, c.zipPrefixes)
	return out
}

// CenterLat returns the cluster center latitude.
func (c *Cluster) CenterLat() float64 { return c.centerLat }

// CenterLng returns the cluster center longitude.
func (c *Cluster) CenterLng() float64 { return c.centerLng }

// RadiusMiles returns the nominal service radius.
func (c *Cluster) RadiusMiles() float64 { return c.radiusMiles }

// Tier returns the cluster's density tier.
func (c *Cluster) Tier() DensityTier { return c.tier }

// SurchargePerLb returns the logistics surcharge in cents per pound applied
// to allocations delivered into this cluster.
func (c *Cluster) SurchargePerLb() int64 { return c.surchargePerLb }

// IsActive reports whether the cluster participates in ZIP matching.
func (c *Cluster) IsActive() bool { return c.active }

// Deactivate removes the cluster from ZIP matching without deleting it.
func (c *Cluster) Deactivate() { c.active = false }

// MatchesZip reports whether the ZIP's 3-digit prefix belongs to this cluster.
func (c *Cluster) MatchesZip(zip kernel.ZipCode) bool {
	prefix := zip.Prefix()
	for _, p := range c.zipPrefixes {
		if p == prefix {
			return true
		}
	}
	return false
}

func (c *Cluster) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Cluster) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("cluster name")
	}
	c.name = name
	return nil
}

func (c *Cluster) setZipPrefixes(prefixes []string) error {
	if len(prefixes) == 0 {
		return errs.NewValueIsRequiredError("zip prefixes")
	}
	for _, p := range prefixes {
		if len(p) != 3 {
			return errs.NewValueIsInvalidErrorWithCause("zip prefixes",
				fmt.Errorf("prefix %q is not 3 characters", p))
		}
		for _, r := range p {
			if r < '0' || r > '9' {
				return errs.NewValueIsInvalidErrorWithCause("zip prefixes",
					fmt.Errorf("prefix %q contains a non-digit", p))
			}
		}
	}
	c.zipPrefixes = make([]string, len(prefixes))
	copy(c.zipPrefixes, prefixes)
	return nil
}

func (c *Cluster) setTier(tier DensityTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	c.tier = tier
	return nil
}
