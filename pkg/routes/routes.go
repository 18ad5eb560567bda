// Package routes declares HTTP routes as nested prefix groups and registers
// them on a ServeMux using method-qualified patterns.
package routes

import "net/http"

// Route binds an HTTP method and pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group organizes routes under a common prefix. Children inherit the
// accumulated prefix of their parents.
type Group struct {
	Prefix   string
	Routes   []Route
	Children []Group
}

// Register adds all routes from the given groups to the mux.
func Register(mux *http.ServeMux, groups ...Group) {
	for _, group := range groups {
		registerGroup(mux, "", group)
	}
}

// Patterns lists the mux patterns a set of groups would register, in
// registration order.
func Patterns(groups ...Group) []string {
	var out []string
	for _, group := range groups {
		walk("", group, func(pattern string, _ http.HandlerFunc) {
			out = append(out, pattern)
		})
	}
	return out
}

func registerGroup(mux *http.ServeMux, parentPrefix string, group Group) {
	walk(parentPrefix, group, func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, h)
	})
}

func walk(parentPrefix string, group Group, fn func(string, http.HandlerFunc)) {
	fullPrefix := parentPrefix + group.Prefix
	for _, route := range group.Routes {
		fn(route.Method+" "+fullPrefix+route.Pattern, route.Handler)
	}
	for _, child := range group.Children {
		walk(fullPrefix, child, fn)
	}
}
