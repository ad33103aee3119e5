package errors

import "log/slog"

const (
	contextKeyOperation = "operation"
	contextKeyField     = "field"
	contextKeyValue     = "value"
	contextKeyExpected  = "expected"
	contextKeyActual    = "actual"
)

// ErrorContext captures structured metadata for categorized errors.
type ErrorContext struct {
	Operation string
	Field     string
	Value     string
	Expected  string
	Actual    string
	Extra     map[string]any
}

// Merge returns a new ErrorContext combining the receiver with the provided context.
// Non-empty fields from the other context override existing values. Extra maps are merged.
func (ec ErrorContext) Merge(other ErrorContext) ErrorContext {
	result := ec

	if other.Operation != "" {
		result.Operation = other.Operation
	}
	if other.Field != "" {
		result.Field = other.Field
	}
	if other.Value != "" {
		result.Value = other.Value
	}
	if other.Expected != "" {
		result.Expected = other.Expected
	}
	if other.Actual != "" {
		result.Actual = other.Actual
	}

	if len(other.Extra) > 0 {
		extra := make(map[string]any, len(result.Extra)+len(other.Extra))
		for k, v := range result.Extra {
			extra[k] = v
		}
		for k, v := range other.Extra {
			extra[k] = v
		}
		result.Extra = extra
	}

	return result
}

// Attrs returns the context as slog attributes in a stable order.
func (ec ErrorContext) Attrs() []slog.Attr {
	var attrs []slog.Attr

	add := func(key, value string) {
		if value != "" {
			attrs = append(attrs, slog.String(key, value))
		}
	}
	add(contextKeyOperation, ec.Operation)
	add(contextKeyField, ec.Field)
	add(contextKeyValue, ec.Value)
	add(contextKeyExpected, ec.Expected)
	add(contextKeyActual, ec.Actual)

	for k, v := range ec.Extra {
		attrs = append(attrs, slog.Any(k, v))
	}

	return attrs
}
