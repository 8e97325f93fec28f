// Package app - registry.go holds command descriptors: the metadata contract
// from which the CLI layer builds its flag sets and help text.
package app

// Flag describes one command flag.
type Flag struct {
	Name        string
	Short       string
	Description string
	HasValue    bool
	Required    bool
}

// Descriptor is the static metadata for one command.
type Descriptor struct {
	Name              string
	Topic             string
	Description       string
	Help              string
	RequiresWorkspace bool
	Flags             []Flag
}

// Key returns the stable "topic:name" identifier used in telemetry records.
func (d Descriptor) Key() string {
	if d.Topic == "" {
		return d.Name
	}
	return d.Topic + ":" + d.Name
}

var registry []Descriptor

// RegisterDescriptor records a command descriptor at init time.
func RegisterDescriptor(d Descriptor) {
	registry = append(registry, d)
}

// Descriptors returns all registered command descriptors in registration order.
func Descriptors() []Descriptor {
	return registry
}
