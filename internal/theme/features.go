package theme

import "sort"

// Feature names the theme may declare support for.
const (
	FeatureFeedLinks        = "automatic-feed-links"
	FeatureTitleTag         = "title-tag"
	FeatureThumbnails       = "post-thumbnails"
	FeatureHTML5            = "html5"
	FeatureCustomBackground = "custom-background"
	FeatureSelectiveRefresh = "customize-selective-refresh-widgets"
	FeatureCustomLogo       = "custom-logo"
)

// Options are the arguments attached to a feature declaration.
type Options map[string]interface{}

// WidgetArea describes a registered sidebar. The Before/After fields wrap each
// widget; BeforeWidget takes the widget id and a class as %[1]s and %[2]s.
type WidgetArea struct {
	ID           string
	Name         string
	Description  string
	BeforeWidget string
	AfterWidget  string
	BeforeTitle  string
	AfterTitle   string
}

// Registry records the capabilities a theme declares. Every declaration is
// keyed by name, so repeating one replaces it rather than adding another.
type Registry struct {
	features map[string]Options
	menus    map[string]string
	areas    map[string]WidgetArea
}

func NewRegistry() *Registry {
	return &Registry{
		features: make(map[string]Options),
		menus:    make(map[string]string),
		areas:    make(map[string]WidgetArea),
	}
}

// AddSupport declares a feature. Unknown names are kept as-is.
func (r *Registry) AddSupport(name string, opts ...Options) {
	merged := Options{}
	for _, o := range opts {
		for k, v := range o {
			merged[k] = v
		}
	}
	r.features[name] = merged
}

func (r *Registry) Supports(name string) bool {
	_, ok := r.features[name]
	return ok
}

// SupportOptions returns the options a feature was declared with, or nil.
func (r *Registry) SupportOptions(name string) Options {
	return r.features[name]
}

// Features lists declared feature names, sorted.
func (r *Registry) Features() []string {
	return sortedKeys(r.features)
}

func (r *Registry) RegisterMenuLocation(name, label string) {
	r.menus[name] = label
}

// MenuLocations maps each registered location to its label.
func (r *Registry) MenuLocations() map[string]string {
	out := make(map[string]string, len(r.menus))
	for k, v := range r.menus {
		out[k] = v
	}
	return out
}

func (r *Registry) RegisterWidgetArea(area WidgetArea) {
	r.areas[area.ID] = area
}

func (r *Registry) WidgetArea(id string) (WidgetArea, bool) {
	a, ok := r.areas[id]
	return a, ok
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
