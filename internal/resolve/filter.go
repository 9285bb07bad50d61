package resolve

import (
	"fmt"
	"strings"
)

// FilterConfig returns the subset of a nested configuration reachable through
// the dotted keepKeys paths. A path whose segment is absent is silently
// omitted. A path that traverses through a leaf, or that terminates on a
// nested mapping instead of a leaf, is a shape mismatch and fails the filter.
//
// An empty keepKeys keeps the entire configuration.
func FilterConfig(cfg map[string]any, keepKeys []string) (map[string]any, error) {
	if len(keepKeys) == 0 {
		return cloneTree(cfg), nil
	}

	out := make(map[string]any)
	for _, key := range keepKeys {
		segments := strings.Split(key, ".")
		value, found, err := lookupPath(cfg, key, segments)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		insertPath(out, segments, value)
	}
	return out, nil
}

func lookupPath(cfg map[string]any, keyPath string, segments []string) (any, bool, error) {
	current := cfg
	for i, segment := range segments {
		value, exists := current[segment]
		if !exists {
			return nil, false, nil
		}

		last := i == len(segments)-1
		child, isMapping := value.(map[string]any)

		if last {
			if isMapping {
				return nil, false, shapeMismatchError(keyPath,
					fmt.Sprintf("segment %q is a nested mapping, expected a leaf", segment))
			}
			return value, true, nil
		}

		if !isMapping {
			return nil, false, shapeMismatchError(keyPath,
				fmt.Sprintf("segment %q is a leaf, expected a nested mapping", segment))
		}
		current = child
	}
	return nil, false, nil
}

func insertPath(out map[string]any, segments []string, value any) {
	current := out
	for _, segment := range segments[:len(segments)-1] {
		child, ok := current[segment].(map[string]any)
		if !ok {
			child = make(map[string]any)
			current[segment] = child
		}
		current = child
	}
	current[segments[len(segments)-1]] = value
}

// cloneTree deep-copies the mapping layers of a config tree so the filter
// output never aliases the caller's raw config.
func cloneTree(cfg map[string]any) map[string]any {
	out := make(map[string]any, len(cfg))
	for key, value := range cfg {
		if child, ok := value.(map[string]any); ok {
			out[key] = cloneTree(child)
			continue
		}
		out[key] = value
	}
	return out
}
