package timezones

import (
	"context"
	"strings"

	"github.com/goliatone/go-metabox/pkg/field"
)

// ProviderName is the catalog name the CLI registers Provider under.
const ProviderName = "timezones"

type providerConfig struct {
	zones  []string
	filter string
	limit  int
}

// OptionFn configures Provider.
type OptionFn func(*providerConfig)

// WithZones replaces the embedded list.
func WithZones(zones []string) OptionFn {
	return func(c *providerConfig) {
		c.zones = append([]string{}, zones...)
	}
}

// WithFilter keeps only zones matching query (see Search).
func WithFilter(query string) OptionFn {
	return func(c *providerConfig) {
		c.filter = query
	}
}

// WithLimit caps the number of options.
func WithLimit(limit int) OptionFn {
	return func(c *providerConfig) {
		c.limit = limit
	}
}

// Provider returns an options provider listing timezones. Keys are the IANA
// names; labels replace underscores with spaces.
func Provider(fns ...OptionFn) field.OptionsProvider {
	cfg := providerConfig{}
	for _, fn := range fns {
		if fn != nil {
			fn(&cfg)
		}
	}
	return func(ctx context.Context, _ string) (field.Options, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		zones := cfg.zones
		if zones == nil {
			var err error
			if zones, err = DefaultZones(); err != nil {
				return nil, err
			}
		}
		matched := Search(zones, cfg.filter, cfg.limit)
		out := make(field.Options, 0, len(matched))
		for _, zone := range matched {
			out = append(out, field.Option{Key: zone, Label: strings.ReplaceAll(zone, "_", " ")})
		}
		return out, nil
	}
}
