package customer

// DeepMerge merges patch into base: nested objects merge key by key, arrays
// and scalars in patch replace the base value. Neither input is mutated.
func DeepMerge(base, patch JSONMap) JSONMap {
	if patch == nil {
		return base
	}
	if base == nil {
		base = JSONMap{}
	}
	out := make(JSONMap, len(base)+len(patch))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range patch {
		patchMap, patchIsMap := toJSONMap(v)
		if !patchIsMap {
			out[k] = v
			continue
		}
		baseMap, baseIsMap := toJSONMap(out[k])
		if !baseIsMap {
			out[k] = patchMap
			continue
		}
		out[k] = DeepMerge(baseMap, patchMap)
	}
	return out
}

func toJSONMap(v any) (JSONMap, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
