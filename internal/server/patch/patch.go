// Package patch merges sparse updates into entities under an optional field
// mask. Entities and patches are compared through their JSON form, so a
// field path is a dotted list of JSON keys ("settings.similarityThreshold").
package patch

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/common"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
)

// IDField is never taken from a patch.
const IDField = "id"

var segmentRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Apply returns current with the fields selected by mask replaced by the
// corresponding values of patch.
//
// Without a mask (nil or empty) every field present in patch is applied.
// A selected path that is absent or null in patch fails the whole update
// with an InvalidArgument error and current is returned untouched. The same
// holds for every key of a nested object the path selects: an object value
// must carry all keys the entity has there.
func Apply[T any](current T, patch any, mask *fieldmaskpb.FieldMask) (T, error) {
	doc, err := json.Marshal(current)
	if err != nil {
		return current, fmt.Errorf("%w: encode entity: %v", common.ErrorInternal, err)
	}
	src, err := json.Marshal(patch)
	if err != nil {
		return current, common.NewInvalidArgument("patch", err.Error())
	}

	paths, err := Paths(src, mask)
	if err != nil {
		return current, err
	}

	for _, path := range paths {
		value := gjson.GetBytes(src, path)
		if !value.Exists() || value.Type == gjson.Null {
			return current, common.NewInvalidArgument(path, "no value supplied for masked field")
		}
		if field := incomplete(gjson.GetBytes(doc, path), value, path); field != "" {
			return current, common.NewInvalidArgument(field, "no value supplied for masked field")
		}
		doc, err = sjson.SetRawBytes(doc, path, []byte(value.Raw))
		if err != nil {
			return current, common.NewInvalidArgument(path, err.Error())
		}
	}

	var merged T
	if err := json.Unmarshal(doc, &merged); err != nil {
		return current, common.NewInvalidArgument("patch", err.Error())
	}
	return merged, nil
}

// incomplete returns the first key below path that cur holds and the object
// value in patch lacks, or "" when patch covers all of them.
func incomplete(cur, patch gjson.Result, path string) string {
	if !cur.IsObject() || !patch.IsObject() {
		return ""
	}
	var missing string
	cur.ForEach(func(key, sub gjson.Result) bool {
		field := path + "." + key.String()
		v := patch.Get(gjson.Escape(key.String()))
		if !v.Exists() || v.Type == gjson.Null {
			missing = field
			return false
		}
		missing = incomplete(sub, v, field)
		return missing == ""
	})
	return missing
}

// Paths returns the normalised paths an update touches: the mask paths when
// a mask is given, otherwise the top-level keys of the encoded patch. The id
// path is removed either way.
func Paths(patch []byte, mask *fieldmaskpb.FieldMask) ([]string, error) {
	var raw []string
	if len(mask.GetPaths()) > 0 {
		raw = mask.GetPaths()
	} else {
		gjson.ParseBytes(patch).ForEach(func(key, _ gjson.Result) bool {
			raw = append(raw, key.String())
			return true
		})
	}

	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, p := range raw {
		norm, err := normalise(p)
		if err != nil {
			return nil, err
		}
		if norm == IDField {
			continue
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}
		out = append(out, norm)
	}
	return out, nil
}

func normalise(path string) (string, error) {
	segments := strings.Split(strings.TrimSpace(path), ".")
	for i, s := range segments {
		if !segmentRe.MatchString(s) {
			return "", common.NewInvalidArgument("updateMask", fmt.Sprintf("malformed path %q", path))
		}
		segments[i] = lowerCamel(s)
	}
	return strings.Join(segments, "."), nil
}

// lowerCamel turns proto-style snake_case into the JSON key spelling.
func lowerCamel(s string) string {
	if !strings.Contains(s, "_") {
		return s
	}
	var b strings.Builder
	upper := false
	for _, r := range s {
		switch {
		case r == '_':
			upper = b.Len() > 0
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
