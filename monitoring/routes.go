package monitoring

import (
	"strings"
	"sync"
)

var (
	// routesMu protects routes and routeTemplates
	routesMu sync.RWMutex
	// routes is a set of static routes preserved as-is
	routes = make(map[string]bool)
	// routeTemplates holds templates with {id}-style placeholders, matched
	// against incoming paths to keep metric label cardinality bounded
	routeTemplates = make([]string, 0)
)

// RegisterRoutes registers routes for normalization. Static routes are kept
// for exact lookup; templates with {id}-style placeholders match incoming
// paths and normalize the dynamic segments. Call during service
// initialization.
func RegisterRoutes(routesList []string) {
	routesMu.Lock()
	defer routesMu.Unlock()

	for _, route := range routesList {
		if strings.Contains(route, "{") {
			routeTemplates = append(routeTemplates, route)
		} else {
			routes[route] = true
		}
	}
}

// NormalizeRoute maps a request path to its registered route, replacing
// dynamic segments with their placeholder. Unregistered paths collapse to
// "unmatched" so arbitrary request paths cannot grow the label set.
func NormalizeRoute(path string) string {
	routesMu.RLock()
	defer routesMu.RUnlock()

	if routes[path] {
		return path
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	for _, template := range routeTemplates {
		if matchTemplate(segments, template) {
			return template
		}
	}
	return "unmatched"
}

func matchTemplate(segments []string, template string) bool {
	templateSegments := strings.Split(strings.Trim(template, "/"), "/")
	if len(segments) != len(templateSegments) {
		return false
	}
	for i, ts := range templateSegments {
		if strings.HasPrefix(ts, "{") && strings.HasSuffix(ts, "}") {
			continue
		}
		if ts != segments[i] {
			return false
		}
	}
	return true
}
