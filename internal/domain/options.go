package domain

import "strings"

// ServiceTypesKey names the option listing the external services an object is cross-posted to.
const ServiceTypesKey = "service_types"

// Options are the optional directives attached to a dispatch. Keys that are not recognised are kept as
// they are and travel with the job.
type Options map[string]any

// ServiceTypes returns the labels under service_types, which may hold a single label or a list.
func (o Options) ServiceTypes() []string {
	raw, ok := o[ServiceTypesKey]
	if !ok {
		return nil
	}

	var labels []string
	switch v := raw.(type) {
	case string:
		labels = []string{v}
	case []string:
		labels = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				labels = append(labels, s)
			}
		}
	}

	out := labels[:0:0]
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
