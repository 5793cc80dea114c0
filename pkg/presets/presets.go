// Package presets holds the static dimension table for platform targets.
package presets

// Size is a preset's pixel dimensions.
type Size struct {
	Width  int
	Height int
}

// Custom is the preset name that stands for user-supplied dimensions.
const Custom = "Custom"

type preset struct {
	name string
	size *Size
}

// Ordered so the CLI listing matches what users see in the docs.
var table = []preset{
	{"Etsy", &Size{2000, 2000}},
	{"Fiverr Gig", &Size{688, 459}},
	{"Fiverr Banner", &Size{2400, 1200}},
	{"Pinterest", &Size{1000, 1500}},
	{Custom, nil},
}

// Names returns the preset names in display order.
func Names() []string {
	names := make([]string, len(table))
	for i, p := range table {
		names[i] = p.name
	}
	return names
}

// Lookup returns the dimensions for a preset. The size is nil for the
// Custom preset, whose dimensions come from the caller. The second
// return reports whether the preset exists at all.
func Lookup(name string) (*Size, bool) {
	for _, p := range table {
		if p.name == name {
			return p.size, true
		}
	}
	return nil, false
}
