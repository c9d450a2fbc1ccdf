package loader

// Merge folds layers into a new map, later layers winning. Nested maps
// merge key by key; any other value, slices included, replaces the
// earlier one. Inputs are never aliased by the result.
func Merge(layers ...map[string]any) map[string]any {
	out := make(map[string]any)
	for _, layer := range layers {
		mergeInto(out, layer)
	}
	return out
}

func mergeInto(dst, src map[string]any) {
	for key, val := range src {
		sub, ok := val.(map[string]any)
		if !ok {
			dst[key] = cloneValue(val)
			continue
		}
		existing, ok := dst[key].(map[string]any)
		if !ok {
			existing = make(map[string]any, len(sub))
			dst[key] = existing
		}
		mergeInto(existing, sub)
	}
}

// Clone returns a deep copy of a config map.
func Clone(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for key, val := range src {
		dst[key] = cloneValue(val)
	}
	return dst
}

func cloneValue(val any) any {
	switch v := val.(type) {
	case map[string]any:
		return Clone(v)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return val
	}
}
