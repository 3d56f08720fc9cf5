package artifact

import (
	"fmt"
	"sort"
	"strings"

	flatbuffers "github.com/google/flatbuffers/go"
)

// CompileResult holds the compiled records, the encoded artifact and any
// non-fatal problems found in the configuration.
type CompileResult struct {
	Styles     []StyleRecord
	Generators []GeneratorRule
	Data       []byte
	Warnings   []string
}

// Compile expands the configuration into sorted style records and ordered
// generator rules and encodes them. Identical configurations produce
// identical bytes.
func Compile(cfg StyleConfig) (*CompileResult, error) {
	result := &CompileResult{}
	records := make(map[string]StyleRecord)
	origin := make(map[string]string)

	// 1. Static records
	for _, name := range sortedKeys(cfg.Static) {
		if !validClassName(name) {
			result.Warnings = append(result.Warnings, fmt.Sprintf("static: skipping invalid class name %q", name))
			continue
		}
		body, err := normalizeBody(cfg.Static[name])
		if err != nil {
			return nil, fmt.Errorf("static %q: %w", name, err)
		}
		records[name] = StyleRecord{Name: name, CSS: body}
		origin[name] = "static"
	}

	// 2. Dynamic families expand to prefix-suffix records
	for _, key := range sortedKeys(cfg.Dynamic) {
		prefix, property, ok := splitCompoundKey(key)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("dynamic: skipping malformed key %q (want \"prefix|property\")", key))
			continue
		}
		values := cfg.Dynamic[key]
		for _, suffix := range sortedKeys(values) {
			name := prefix + "-" + suffix
			if !validClassName(name) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("dynamic %q: skipping invalid class name %q", key, name))
				continue
			}
			body, err := normalizeBody(property + ": " + values[suffix])
			if err != nil {
				return nil, fmt.Errorf("dynamic %q suffix %q: %w", key, suffix, err)
			}
			if prev, exists := origin[name]; exists {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"duplicate class %q from dynamic %q ignored, keeping %s definition", name, key, prev))
				continue
			}
			records[name] = StyleRecord{Name: name, CSS: body}
			origin[name] = fmt.Sprintf("dynamic %q", key)
		}
	}

	result.Styles = make([]StyleRecord, 0, len(records))
	for _, name := range sortedKeys(records) {
		result.Styles = append(result.Styles, records[name])
	}

	// 3. Generators
	seen := make(map[string]string)
	for _, key := range sortedKeys(cfg.Generators) {
		prefix, property, ok := splitCompoundKey(key)
		if !ok {
			result.Warnings = append(result.Warnings, fmt.Sprintf("generators: skipping malformed key %q (want \"prefix|property\")", key))
			continue
		}
		if prev, exists := seen[prefix]; exists {
			return nil, fmt.Errorf("%w: %q is used by %q and %q", ErrAmbiguousGenerator, prefix, prev, key)
		}
		seen[prefix] = key

		gen := cfg.Generators[key]
		if _, err := normalizeBody(property + ": 1" + gen.Unit); err != nil {
			return nil, fmt.Errorf("generator %q: %w", key, err)
		}
		result.Generators = append(result.Generators, GeneratorRule{
			Prefix:     prefix,
			Property:   property,
			Multiplier: gen.Multiplier,
			Unit:       gen.Unit,
		})
	}
	SortGenerators(result.Generators)

	result.Data = Encode(result.Styles, result.Generators)
	return result, nil
}

// SortGenerators orders rules longest prefix first so that the most specific
// rule wins when prefixes overlap; ties are broken by prefix then property.
func SortGenerators(gens []GeneratorRule) {
	sort.SliceStable(gens, func(i, j int) bool {
		a, b := gens[i], gens[j]
		if len(a.Prefix) != len(b.Prefix) {
			return len(a.Prefix) > len(b.Prefix)
		}
		if a.Prefix != b.Prefix {
			return a.Prefix < b.Prefix
		}
		return a.Property < b.Property
	})
}

// Encode writes styles and generators into an artifact buffer. Styles must
// already be sorted by name; Open rejects unsorted buffers.
func Encode(styles []StyleRecord, generators []GeneratorRule) []byte {
	b := flatbuffers.NewBuilder(1024)

	styleOffsets := make([]flatbuffers.UOffsetT, len(styles))
	for i, s := range styles {
		styleOffsets[i] = buildStyle(b, s.Name, s.CSS)
	}
	stylesVec := buildOffsetVector(b, styleOffsets)

	genOffsets := make([]flatbuffers.UOffsetT, len(generators))
	for i, g := range generators {
		genOffsets[i] = buildGenerator(b, g)
	}
	gensVec := buildOffsetVector(b, genOffsets)

	root := buildConfig(b, stylesVec, gensVec)
	b.FinishWithFileIdentifier(root, []byte(FileIdentifier))

	finished := b.FinishedBytes()
	out := make([]byte, len(finished))
	copy(out, finished)
	return out
}

// splitCompoundKey splits "prefix|property".
func splitCompoundKey(key string) (prefix, property string, ok bool) {
	parts := strings.Split(key, "|")
	if len(parts) != 2 {
		return "", "", false
	}
	prefix = strings.TrimSpace(parts[0])
	property = strings.TrimSpace(parts[1])
	if prefix == "" || property == "" {
		return "", "", false
	}
	return prefix, property, true
}

// validClassName rejects names that can never appear as a single
// whitespace-separated token.
func validClassName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n\f")
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
