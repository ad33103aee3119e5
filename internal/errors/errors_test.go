package errors

import (
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSample = errors.New("sample failure")

func TestNewReturnsNilForNilCause(t *testing.T) {
	assert.Nil(t, New(CategoryCritical, nil, ErrorContext{}))
	assert.Nil(t, WrapRecoverable(nil, "op"))
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "field and value",
			err:  FieldError(errSample, "memory_to_monitor", "10XB"),
			want: `memory_to_monitor "10XB": sample failure`,
		},
		{
			name: "field only",
			err:  New(CategoryRecoverable, errSample, ErrorContext{Field: "delay"}),
			want: "delay: sample failure",
		},
		{
			name: "operation only",
			err:  WrapRecoverable(errSample, "load_config"),
			want: "load_config: sample failure",
		},
		{
			name: "bare",
			err:  New(CategoryOptional, errSample, ErrorContext{}),
			want: "sample failure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", FieldError(errSample, "delay", "soon"))

	assert.ErrorIs(t, wrapped, errSample)

	var e *Error
	require.ErrorAs(t, wrapped, &e)
	assert.Equal(t, CategoryRecoverable, e.Category)
	assert.Equal(t, "delay", e.Context.Field)
}

func TestIsCritical(t *testing.T) {
	assert.True(t, IsCritical(New(CategoryCritical, errSample, ErrorContext{})))
	assert.False(t, IsCritical(WrapRecoverable(errSample, "op")))
	assert.False(t, IsCritical(errSample))
	assert.False(t, IsCritical(nil))
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "critical", CategoryCritical.String())
	assert.Equal(t, "recoverable", CategoryRecoverable.String())
	assert.Equal(t, "optional", CategoryOptional.String())
	assert.Equal(t, "unknown(7)", Category(7).String())
}

func TestContextMerge(t *testing.T) {
	base := ErrorContext{Operation: "parse", Field: "a", Extra: map[string]any{"k1": 1}}
	merged := base.Merge(ErrorContext{Field: "b", Value: "v", Extra: map[string]any{"k2": 2}})

	assert.Equal(t, "parse", merged.Operation)
	assert.Equal(t, "b", merged.Field)
	assert.Equal(t, "v", merged.Value)
	assert.Equal(t, map[string]any{"k1": 1, "k2": 2}, merged.Extra)
	assert.Equal(t, map[string]any{"k1": 1}, base.Extra, "merge must not mutate the receiver")
}

func TestContextAttrs(t *testing.T) {
	ctx := ErrorContext{Field: "delay", Value: "soon", Expected: "duration"}

	attrs := ctx.Attrs()
	require.Len(t, attrs, 3)
	assert.True(t, attrs[0].Equal(slog.String("field", "delay")), attrs[0].String())
	assert.True(t, attrs[2].Equal(slog.String("expected", "duration")), attrs[2].String())
}

func TestMultiError(t *testing.T) {
	var m MultiError
	assert.NoError(t, m.ErrorOrNil())

	m.Add(nil)
	m.Add(FieldError(errSample, "delay", "soon"))
	m.Add(errors.New("second"))

	require.Error(t, m.ErrorOrNil())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, `delay "soon": sample failure; second`, m.Error())
	assert.ErrorIs(t, m.ErrorOrNil(), errSample)

	var e *Error
	assert.ErrorAs(t, m.ErrorOrNil(), &e)
}

func TestLogArgs(t *testing.T) {
	assert.Nil(t, LogArgs(nil))

	args := LogArgs(FieldError(errSample, "delay", "soon"))
	require.Len(t, args, 5)
	category, ok := args[1].(slog.Attr)
	require.True(t, ok)
	assert.True(t, category.Equal(slog.String("category", "recoverable")), category.String())

	plain := LogArgs(errSample)
	require.Len(t, plain, 1)
	attr, ok := plain[0].(slog.Attr)
	require.True(t, ok)
	assert.True(t, attr.Equal(slog.String("error", "sample failure")), attr.String())
}
