package theme

import (
	"errors"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
)

// ErrUnknownVariant is returned by Lookup for names with no builtin variant.
var ErrUnknownVariant = errors.New("theme: unknown variant")

// DefaultVariant is used when no variant is configured.
const DefaultVariant = "amp"

// Variant carries the copy and colors that used to differ between the
// duplicated console screens. Colors are hex strings.
type Variant struct {
	Name     string
	Title    string
	Subtitle string
	Accent   string
	Lanes    map[string]string

	// LaneOrder lists the lanes offered to new events, most used first.
	LaneOrder []string
}

var sharedLanes = map[string]string{
	"Operations":   "#64748B",
	"Media":        "#EC4899",
	"Board":        "#8B5CF6",
	"Teaching":     "#0EA5E9",
	"Speaking":     "#F97316",
	"Travel":       "#14B8A6",
	"Partnerships": "#84CC16",
}

// fallbackLanes colors lanes no variant names.
var fallbackLanes = []string{
	"#EF4444", "#F59E0B", "#22C55E", "#06B6D4", "#3B82F6", "#A855F7",
}

var builtins = map[string]Variant{
	"amp": {
		Name:      "amp",
		Title:     "AMP Admin",
		Subtitle:  "Calendar & Documentation",
		Accent:    "#F59E0B",
		Lanes:     sharedLanes,
		LaneOrder: []string{"Operations", "Media", "Board", "Teaching", "Speaking", "Travel", "Partnerships"},
	},
	"cred": {
		Name:     "cred",
		Title:    "Cred Admin",
		Subtitle: "Volumes, Research & Schedule",
		Accent:   "#6366F1",
		Lanes: merge(sharedLanes, map[string]string{
			"Teaching": "#6366F1",
			"Board":    "#C026D3",
		}),
		LaneOrder: []string{"Teaching", "Speaking", "Board", "Media", "Travel", "Operations", "Partnerships"},
	},
	"dashboard": {
		Name:     "dashboard",
		Title:    "Dashboard",
		Subtitle: "Schedule overview",
		Accent:   "#10B981",
		Lanes: merge(sharedLanes, map[string]string{
			"Operations": "#10B981",
		}),
		LaneOrder: []string{"Operations", "Board", "Partnerships", "Media", "Teaching", "Speaking", "Travel"},
	},
}

func merge(base, over map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Names lists the builtin variants.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the builtin variant called name. Empty selects the default.
func Lookup(name string) (Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultVariant
	}
	v, ok := builtins[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q (want one of %s)", ErrUnknownVariant, name, strings.Join(Names(), ", "))
	}
	return v, nil
}

// DefaultLane is the lane new events start in, or "" when the variant
// names none.
func (v Variant) DefaultLane() string {
	if len(v.LaneOrder) == 0 {
		return ""
	}
	return v.LaneOrder[0]
}

// LaneColor resolves the color for an event. An explicit hex color tag wins,
// then the variant's lane map, then a stable pick from the fallback set.
func (v Variant) LaneColor(lane, explicit string) string {
	if hex, ok := normalizeHex(explicit); ok {
		return hex
	}
	if c, ok := v.Lanes[lane]; ok {
		return c
	}
	if lane == "" {
		return v.Accent
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(lane))
	return fallbackLanes[h.Sum32()%uint32(len(fallbackLanes))]
}
