package mqttbridge

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ashdown-labs/larkhub-core/internal/taxonomy"
)

// ChannelDef declares one channel of a bridged device.
type ChannelDef struct {
	// Slug names the channel inside the device's topic space. It must
	// be unique within the device.
	Slug string `yaml:"slug"`

	// Kind is the channel kind tag, e.g. "temperature" or "on_off".
	Kind string `yaml:"kind"`

	// Role is "getter" or "setter".
	Role string `yaml:"role"`

	// Min and Max optionally constrain numeric channels to a closed
	// interval. Both must be set together.
	Min *float64 `yaml:"min,omitempty"`
	Max *float64 `yaml:"max,omitempty"`

	// Idempotent marks setters safe to replay.
	Idempotent bool `yaml:"idempotent,omitempty"`
}

// DeviceDef declares one bridged device and its channels.
type DeviceDef struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Vendor   string       `yaml:"vendor,omitempty"`
	Model    string       `yaml:"model,omitempty"`
	Tags     []string     `yaml:"tags,omitempty"`
	Channels []ChannelDef `yaml:"channels"`
}

// DevicesFile is the root of the devices YAML file named by
// mqtt.devices_file in the gateway configuration.
type DevicesFile struct {
	Devices []DeviceDef `yaml:"devices"`
}

// LoadDevices reads and validates a devices file.
func LoadDevices(path string) (*DevicesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mqttbridge: reading devices file: %w", err)
	}

	var f DevicesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("mqttbridge: parsing devices file: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("mqttbridge: validating devices file: %w", err)
	}
	return &f, nil
}

// Validate checks structural requirements before any broker or registry
// work happens: ids present, slugs unique per device, roles recognised.
func (f *DevicesFile) Validate() error {
	seenDevices := make(map[string]struct{}, len(f.Devices))
	for _, d := range f.Devices {
		if d.ID == "" {
			return fmt.Errorf("device with empty id")
		}
		if _, dup := seenDevices[d.ID]; dup {
			return fmt.Errorf("duplicate device id %q", d.ID)
		}
		seenDevices[d.ID] = struct{}{}

		if d.Name == "" {
			return fmt.Errorf("device %q has empty name", d.ID)
		}
		if len(d.Channels) == 0 {
			return fmt.Errorf("device %q declares no channels", d.ID)
		}

		seenSlugs := make(map[string]struct{}, len(d.Channels))
		for _, ch := range d.Channels {
			if ch.Slug == "" {
				return fmt.Errorf("device %q has channel with empty slug", d.ID)
			}
			if _, dup := seenSlugs[ch.Slug]; dup {
				return fmt.Errorf("device %q has duplicate channel slug %q", d.ID, ch.Slug)
			}
			seenSlugs[ch.Slug] = struct{}{}

			if ch.Kind == "" {
				return fmt.Errorf("device %q channel %q has empty kind", d.ID, ch.Slug)
			}
			if ch.Role != "getter" && ch.Role != "setter" {
				return fmt.Errorf("device %q channel %q has role %q, want getter or setter",
					d.ID, ch.Slug, ch.Role)
			}
			if (ch.Min == nil) != (ch.Max == nil) {
				return fmt.Errorf("device %q channel %q sets only one of min/max", d.ID, ch.Slug)
			}
		}
	}
	return nil
}

// rangeFor builds the constraint range for a channel definition, or nil
// when unconstrained.
func (c ChannelDef) rangeFor() (*taxonomy.Range, error) {
	if c.Min == nil {
		return nil, nil
	}
	kind := taxonomy.Kind(c.Kind)
	return taxonomy.NewBetweenEq(taxonomy.Number(kind, *c.Min), taxonomy.Number(kind, *c.Max))
}
