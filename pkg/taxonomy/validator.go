package taxonomy

import (
	"context"
	"fmt"
	"slices"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/guard"
	"github.com/Ahryman40k/angular-bootstrap-example-sub014/pkg/result"
)

// Ref asks for Value to be a code of Group. Value is a string, a slice of
// strings or nil (nothing to check). Target names the input field.
type Ref struct {
	Target string
	Group  Group
	Value  any
}

// Validator checks input values against reference data.
type Validator struct {
	source Source
}

func NewValidator(source Source) *Validator {
	if source == nil {
		panic("taxonomy: source cannot be nil")
	}
	return &Validator{source: source}
}

// Check validates every reference and combines the failures. Unknown codes
// yield Taxonomy failures; an unreachable source yields an unexpected one.
func (v *Validator) Check(ctx context.Context, refs ...Ref) result.Result[result.Void] {
	var outcomes []result.Outcome
	for _, ref := range refs {
		values := valuesOf(ref.Value)
		if len(values) == 0 {
			continue
		}

		codes, err := v.source.Codes(ctx, ref.Group)
		if err != nil {
			outcomes = append(outcomes, guard.Fail(guard.Unexpected(ref.Target, err.Error())).Result())
			continue
		}

		for _, value := range values {
			if !slices.Contains(codes, value) {
				outcomes = append(outcomes, guard.Fail(guard.Taxonomy(
					ref.Target,
					fmt.Sprintf("%s '%s' is not a valid %s", ref.Target, value, ref.Group),
				)).Result())
			}
		}
	}
	return result.Combine(outcomes...)
}

func valuesOf(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		if t == "" {
			return nil
		}
		return []string{t}
	case *string:
		if t == nil || *t == "" {
			return nil
		}
		return []string{*t}
	case []string:
		return t
	}
	return []string{fmt.Sprint(v)}
}
