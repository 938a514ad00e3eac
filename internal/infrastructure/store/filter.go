package store

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Condition is one filter term in a store query, rendered as a
// `column=op.value` query parameter.
type Condition interface {
	apply(values url.Values)
}

type opCondition struct {
	column string
	op     string
	value  any
}

func Eq(column string, value any) Condition {
	return opCondition{column: column, op: "eq", value: value}
}

func Gte(column string, value any) Condition {
	return opCondition{column: column, op: "gte", value: value}
}

func Lte(column string, value any) Condition {
	return opCondition{column: column, op: "lte", value: value}
}

func (c opCondition) apply(values url.Values) {
	values.Set(c.column, c.op+"."+formatValue(c.value))
}

type inCondition struct {
	column string
	values []any
}

func In(column string, items []any) Condition {
	return inCondition{column: column, values: items}
}

func (c inCondition) apply(values url.Values) {
	parts := make([]string, 0, len(c.values))
	for _, item := range c.values {
		parts = append(parts, formatValue(item))
	}
	values.Set(c.column, "in.("+strings.Join(parts, ",")+")")
}

func formatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func encodeQuery(selectColumns string, limit int, conditions []Condition) string {
	values := url.Values{}
	if selectColumns != "" {
		values.Set("select", selectColumns)
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	for _, condition := range conditions {
		condition.apply(values)
	}
	return values.Encode()
}
