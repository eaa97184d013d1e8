package client

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"time"

	"github.com/simp-lee/schoolkit/internal/domain"
)

// queryValues builds the query string for a list request. Absent or empty
// fields are omitted entirely, never sent as empty parameters.
func queryValues(q domain.Query) url.Values {
	values := url.Values{}

	setNonEmpty(values, "search", q.Search)
	setNonEmpty(values, "status", q.Status)
	setNonEmpty(values, "category", q.Category)
	setNonEmpty(values, "sortBy", q.SortBy)
	setNonEmpty(values, "sortOrder", q.SortOrder)

	if !q.DateFrom.IsZero() {
		values.Set("dateFrom", q.DateFrom.Format(time.RFC3339))
	}
	if !q.DateTo.IsZero() {
		values.Set("dateTo", q.DateTo.Format(time.RFC3339))
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}

	for key, v := range q.Extra {
		s, ok := paramString(v)
		if !ok {
			continue
		}
		values.Set(key, s)
	}

	return values
}

func setNonEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}

// paramString serializes one query parameter value. Dates serialize to
// RFC 3339, nested objects and slices to JSON text. The second return is
// false when the value is absent and must be omitted.
func paramString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		return t, t != ""
	case time.Time:
		if t.IsZero() {
			return "", false
		}
		return t.Format(time.RFC3339), true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case fmt.Stringer:
		s := t.String()
		return s, s != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr:
		if rv.IsNil() {
			return "", false
		}
		return paramString(rv.Elem().Interface())
	case reflect.Slice, reflect.Map, reflect.Struct:
		if rv.Kind() != reflect.Struct && rv.Len() == 0 {
			return "", false
		}
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	default:
		return fmt.Sprint(v), true
	}
}
