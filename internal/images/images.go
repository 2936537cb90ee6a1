package images

import (
	"context"
	"encoding/json"
	"strings"
)

// Resolver turns a stored image path into a URL the browser can load.
type Resolver interface {
	Resolve(ctx context.Context, path string) string
}

// BaseURL prefixes relative paths with the configured image host.
type BaseURL struct {
	Base string
}

func (b BaseURL) Resolve(_ context.Context, path string) string {
	if path == "" {
		return ""
	}
	if IsAbsolute(path) {
		return path
	}
	return b.Base + path
}

func IsAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ResolveAll resolves every path and drops the ones that come out empty.
func ResolveAll(ctx context.Context, r Resolver, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if u := r.Resolve(ctx, p); u != "" {
			out = append(out, u)
		}
	}
	return out
}

// Paths reads an image list the backend may send either as plain strings
// or as {"url": "..."} objects. Anything else is skipped.
func Paths(raw json.RawMessage) []string {
	var items []json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &items) != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		var s string
		if json.Unmarshal(it, &s) == nil {
			if s != "" {
				out = append(out, s)
			}
			continue
		}
		var obj struct {
			URL string `json:"url"`
		}
		if json.Unmarshal(it, &obj) == nil && obj.URL != "" {
			out = append(out, obj.URL)
		}
	}
	return out
}
