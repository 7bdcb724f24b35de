package ratelimit

import "strings"

// unlimitedPaths are never rate limited.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

var unlimited = EndpointConfig{}

// MatchEndpoint returns the first configuration whose pattern and method match,
// or nil when the default limit applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == "GET" && unlimitedPaths[path] {
		u := unlimited
		u.Path = path
		u.Method = method
		return &u
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && matchPattern(config.Path, path) {
			return config
		}
	}
	return nil
}

// matchPattern compares path against pattern segment by segment. A pattern
// ending in "/" matches anything below it.
func matchPattern(pattern, path string) bool {
	prefix := strings.HasSuffix(pattern, "/")
	patternSegs := strings.Split(strings.Trim(pattern, "/"), "/")
	pathSegs := strings.Split(strings.Trim(path, "/"), "/")

	if len(pathSegs) < len(patternSegs) || (!prefix && len(pathSegs) != len(patternSegs)) {
		return false
	}
	if prefix && len(pathSegs) == len(patternSegs) && !strings.HasSuffix(path, "/") {
		return false
	}
	for i, seg := range patternSegs {
		if seg != "*" && seg != pathSegs[i] {
			return false
		}
	}
	return true
}
