package filter

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/NvMustang/fomo-sub000/pkg/event"
	"github.com/NvMustang/fomo-sub000/pkg/timeutil"
)

// searchEvent walks every string and number field of the event, nested
// structs included, and reports whether any formatted value contains q.
// Every field is a candidate, not a fixed allow-list.
func searchEvent(e *event.Event, q string) bool {
	return searchValue(reflect.ValueOf(e), q, 0)
}

const maxSearchDepth = 8

func searchValue(v reflect.Value, q string, depth int) bool {
	if depth > maxSearchDepth || !v.IsValid() {
		return false
	}

	// Time values format as RFC3339 rather than being walked field by field.
	if v.CanInterface() {
		switch t := v.Interface().(type) {
		case timeutil.Timestamp:
			return !t.IsZero() && strings.Contains(strings.ToLower(t.String()), q)
		case time.Time:
			return !t.IsZero() && strings.Contains(strings.ToLower(timeutil.FormatTime(t)), q)
		}
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return false
		}
		return searchValue(v.Elem(), q, depth+1)
	case reflect.String:
		return strings.Contains(strings.ToLower(v.String()), q)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strings.Contains(strconv.FormatInt(v.Int(), 10), q)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strings.Contains(strconv.FormatUint(v.Uint(), 10), q)
	case reflect.Float32, reflect.Float64:
		return strings.Contains(strconv.FormatFloat(v.Float(), 'f', -1, 64), q)
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if searchValue(v.Index(i), q, depth+1) {
				return true
			}
		}
	case reflect.Map:
		for _, key := range v.MapKeys() {
			if searchValue(key, q, depth+1) || searchValue(v.MapIndex(key), q, depth+1) {
				return true
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if t.Field(i).PkgPath != "" {
				continue // unexported
			}
			if searchValue(v.Field(i), q, depth+1) {
				return true
			}
		}
	}
	return false
}
