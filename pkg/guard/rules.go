package guard

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Ahryman40k/angular-bootstrap-example-sub014/core"
)

// Rule pairs a check with the failure reported when the check does not hold.
type Rule struct {
	Check   func() bool
	Failure core.Failure
}

// Apply evaluates independent rules and collects every failure.
func Apply(rules ...Rule) Outcome {
	var failures core.Failures
	for _, rule := range rules {
		if !rule.Check() {
			failures = append(failures, rule.Failure)
		}
	}
	return Fail(failures...)
}

// NewRule builds a business rule: cond must hold, otherwise a BusinessRule failure is reported.
func NewRule(target, message string, cond func() bool) Rule {
	return Rule{Check: cond, Failure: BusinessRule(target, message)}
}

func ruleFor(kind CheckKind, arg Argument) Rule {
	name, value, extra := arg.Name, indirect(arg.Value), arg.Extra
	switch kind {
	case Required:
		return RequiredRule(name, arg.Value)
	case Absent:
		return Rule{
			Check:   func() bool { return isAbsent(arg.Value) },
			Failure: InvalidInput(name, fmt.Sprintf("%s must not be provided", name)),
		}
	case NotEmptyString:
		return NotEmptyStringRule(name, value)
	case ValidUUID:
		return UUIDRule(name, value)
	case ValidObjectID:
		return ObjectIDRule(name, value)
	case MatchesPattern:
		return PatternRule(name, value, first(extra))
	case OneOf:
		return OneOfRule(name, value, extra...)
	case Positive:
		return numberRule(name, value, "must be positive", func(f float64) bool { return f > 0 })
	case ZeroOrPositive:
		return numberRule(name, value, "must be zero or positive", func(f float64) bool { return f >= 0 })
	case Integer:
		return numberRule(name, value, "must be an integer", isWhole)
	case PositiveInteger:
		return numberRule(name, value, "must be a positive integer", func(f float64) bool { return isWhole(f) && f > 0 })
	case ZeroOrPositiveInteger:
		return numberRule(name, value, "must be zero or a positive integer", func(f float64) bool { return isWhole(f) && f >= 0 })
	case NonZero:
		return numberRule(name, value, "must not be zero", func(f float64) bool { return f != 0 })
	case InRange:
		return RangeRule(name, value, first(extra), second(extra))
	case IsArray:
		return Rule{
			Check:   func() bool { return isSlice(value) },
			Failure: InvalidInput(name, fmt.Sprintf("%s must be an array", name)),
		}
	case NotEmptyArray:
		return Rule{
			Check: func() bool {
				return isSlice(value) && reflect.ValueOf(value).Len() > 0
			},
			Failure: core.NewFailure(core.CodeMissingValue, name, fmt.Sprintf("%s must not be empty", name)),
		}
	case CommaSeparated:
		return CommaSeparatedRule(name, value, stringsOf(extra)...)
	case OrderByList:
		return OrderByRule(name, value, stringsOf(extra)...)
	case ValidGeometry:
		return GeometryRule(name, value)
	case ValidDate:
		return DateRule(name, value)
	case IsBoolean:
		return Rule{
			Check: func() bool {
				switch v := value.(type) {
				case bool:
					return true
				case string:
					_, err := strconv.ParseBool(v)
					return err == nil
				}
				return false
			},
			Failure: InvalidInput(name, fmt.Sprintf("%s must be a boolean", name)),
		}
	case MaxFileSize:
		return FileSizeRule(name, value, first(extra))
	default:
		return Rule{
			Check:   func() bool { return false },
			Failure: Unexpected(name, fmt.Sprintf("unknown check %q", kind)),
		}
	}
}

// RequiredRule validates that a value is present.
func RequiredRule(name string, value any) Rule {
	return Rule{
		Check:   func() bool { return !isAbsent(value) },
		Failure: MissingValue(name),
	}
}

// NotEmptyStringRule validates that a string has non-blank content.
func NotEmptyStringRule(name string, value any) Rule {
	return Rule{
		Check: func() bool {
			s, ok := value.(string)
			return ok && strings.TrimSpace(s) != ""
		},
		Failure: core.NewFailure(core.CodeMissingValue, name, fmt.Sprintf("%s must not be empty", name)),
	}
}

// UUIDRule validates standard UUID format with pre-validation to avoid expensive parsing.
func UUIDRule(name string, value any) Rule {
	return Rule{
		Check: func() bool {
			switch v := value.(type) {
			case uuid.UUID:
				return v != uuid.Nil
			case string:
				// Fast rejection: check length and hyphen positions before parsing
				if len(v) != 36 || v[8] != '-' || v[13] != '-' || v[18] != '-' || v[23] != '-' {
					return false
				}
				_, err := uuid.Parse(v)
				return err == nil
			}
			return false
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must be a valid UUID", name)),
	}
}

// ObjectIDRule validates a MongoDB ObjectID, given as bson.ObjectID or 24-char hex.
func ObjectIDRule(name string, value any) Rule {
	return Rule{
		Check: func() bool {
			switch v := value.(type) {
			case bson.ObjectID:
				return !v.IsZero()
			case string:
				_, err := bson.ObjectIDFromHex(v)
				return err == nil
			}
			return false
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must be a valid object id", name)),
	}
}

// PatternRule validates a string against a regular expression.
func PatternRule(name string, value, pattern any) Rule {
	var re *regexp.Regexp
	switch p := pattern.(type) {
	case *regexp.Regexp:
		re = p
	case string:
		re, _ = regexp.Compile(p)
	}
	return Rule{
		Check: func() bool {
			s, ok := value.(string)
			return ok && re != nil && re.MatchString(s)
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s has an invalid format", name)),
	}
}

// OneOfRule validates membership in the allowed values. Slices are checked element by element.
func OneOfRule(name string, value any, allowed ...any) Rule {
	return Rule{
		Check: func() bool {
			if isSlice(value) && !isByteSlice(value) {
				rv := reflect.ValueOf(value)
				for i := range rv.Len() {
					if !contains(allowed, rv.Index(i).Interface()) {
						return false
					}
				}
				return true
			}
			return contains(allowed, value)
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must be one of: %s", name, joinAny(allowed))),
	}
}

// RangeRule validates min <= value <= max; a nil bound is open.
func RangeRule(name string, value, min, max any) Rule {
	lo, hasLo := toNumber(min)
	hi, hasHi := toNumber(max)
	return Rule{
		Check: func() bool {
			f, ok := toNumber(value)
			if !ok {
				return false
			}
			return (!hasLo || f >= lo) && (!hasHi || f <= hi)
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must be between %v and %v", name, orOpen(min), orOpen(max))),
	}
}

// CommaSeparatedRule validates a comma-separated list: no empty items and,
// when allowed is not empty, only allowed items.
func CommaSeparatedRule(name string, value any, allowed ...string) Rule {
	return Rule{
		Check: func() bool {
			items, ok := splitList(value)
			if !ok {
				return false
			}
			for _, item := range items {
				if item == "" || (len(allowed) > 0 && !slices.Contains(allowed, item)) {
					return false
				}
			}
			return true
		},
		Failure: InvalidInput(name, listMessage(name, "a comma-separated list", allowed)),
	}
}

var orderByItem = regexp.MustCompile(`^-?[A-Za-z_][A-Za-z0-9_.]*$`)

// OrderByRule validates "field,-field" sort expressions, optionally against sortable fields.
func OrderByRule(name string, value any, sortable ...string) Rule {
	return Rule{
		Check: func() bool {
			items, ok := splitList(value)
			if !ok {
				return false
			}
			for _, item := range items {
				if !orderByItem.MatchString(item) {
					return false
				}
				if len(sortable) > 0 && !slices.Contains(sortable, strings.TrimPrefix(item, "-")) {
					return false
				}
			}
			return true
		},
		Failure: InvalidInput(name, listMessage(name, "a comma-separated list of fields, optionally prefixed by '-'", sortable)),
	}
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, time.DateOnly}

// DateRule validates a time.Time or an RFC 3339 / YYYY-MM-DD string.
func DateRule(name string, value any) Rule {
	return Rule{
		Check: func() bool {
			switch v := value.(type) {
			case time.Time:
				return !v.IsZero()
			case string:
				for _, layout := range dateLayouts {
					if _, err := time.Parse(layout, v); err == nil {
						return true
					}
				}
			}
			return false
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must be a valid date", name)),
	}
}

// FileSizeRule validates a byte size against an upper bound.
func FileSizeRule(name string, value, limit any) Rule {
	max, hasMax := toNumber(limit)
	return Rule{
		Check: func() bool {
			size, ok := toNumber(value)
			return ok && hasMax && size >= 0 && size <= max
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s must not exceed %v bytes", name, orOpen(limit))),
	}
}

func numberRule(name string, value any, message string, cond func(float64) bool) Rule {
	return Rule{
		Check: func() bool {
			f, ok := toNumber(value)
			return ok && cond(f)
		},
		Failure: InvalidInput(name, fmt.Sprintf("%s %s", name, message)),
	}
}

// toNumber accepts every numeric kind and numeric strings.
func toNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f, err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func isWhole(f float64) bool {
	return f == float64(int64(f))
}

func indirect(v any) any {
	if isAbsent(v) {
		return v
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	return rv.Interface()
}

func isSlice(v any) bool {
	if v == nil {
		return false
	}
	k := reflect.ValueOf(v).Kind()
	return k == reflect.Slice || k == reflect.Array
}

func isByteSlice(v any) bool {
	_, ok := v.([]byte)
	return ok
}

func contains(allowed []any, v any) bool {
	for _, a := range allowed {
		if reflect.DeepEqual(a, v) || sameString(a, v) {
			return true
		}
	}
	return false
}

// sameString lets typed string enums match their plain string values.
func sameString(a, b any) bool {
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	return ra.IsValid() && rb.IsValid() &&
		ra.Kind() == reflect.String && rb.Kind() == reflect.String &&
		ra.String() == rb.String()
}

// splitList accepts "a,b" strings and string slices.
func splitList(v any) ([]string, bool) {
	switch l := v.(type) {
	case string:
		parts := strings.Split(l, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, true
	case []string:
		return l, true
	}
	return nil, false
}

// Extra converts typed values into the Extra slice of an Argument.
func Extra[T any](values ...T) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}

func stringsOf(values []any) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, fmt.Sprint(v))
	}
	return out
}

func joinAny(values []any) string {
	return strings.Join(stringsOf(values), ", ")
}

func listMessage(name, shape string, allowed []string) string {
	if len(allowed) == 0 {
		return fmt.Sprintf("%s must be %s", name, shape)
	}
	return fmt.Sprintf("%s must be %s among: %s", name, shape, strings.Join(allowed, ", "))
}

func first(values []any) any {
	if len(values) > 0 {
		return values[0]
	}
	return nil
}

func second(values []any) any {
	if len(values) > 1 {
		return values[1]
	}
	return nil
}

func orOpen(v any) any {
	if v == nil {
		return "unbounded"
	}
	return v
}
