package resolve

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/sourcegraph/conc/panics"
)

// Type labels used when a non-error value is thrown.
const (
	TypeNull     = "null"
	TypeString   = "string"
	TypeNumber   = "number"
	TypeBoolean  = "boolean"
	TypeFunction = "function"
	TypeObject   = "object"
)

// ThrownError is the error built for a panic or rejection whose value is not
// an error itself.
type ThrownError struct {
	Type  string
	Value any

	// Stack is the stack of the panicking goroutine, if the value was
	// recovered from a panic.
	Stack []byte

	msg string
}

func (e *ThrownError) Error() string {
	return e.msg
}

// Normalize converts any thrown value into an error. Errors are returned
// unchanged; anything else is wrapped in a *ThrownError.
func Normalize(v any) error {
	if err, ok := v.(error); ok {
		return err
	}

	typ := TypeOf(v)

	return &ThrownError{
		Type:  typ,
		Value: v,
		msg:   fmt.Sprintf(`An error of type "%s" was thrown: %s`, typ, render(typ, v)),
	}
}

func fromRecovered(rp *panics.Recovered) error {
	err := Normalize(rp.Value)
	if te, ok := err.(*ThrownError); ok {
		te.Stack = rp.Stack
	}

	return err
}

// TypeOf classifies v into one of the Type* labels. nil, including typed nil
// pointers, maps, slices, funcs, channels and interfaces, is always "null".
func TypeOf(v any) string {
	if v == nil {
		return TypeNull
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return TypeNull
		}
	}

	switch rv.Kind() {
	case reflect.String:
		return TypeString
	case reflect.Bool:
		return TypeBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return TypeNumber
	case reflect.Func:
		return TypeFunction
	default:
		return TypeObject
	}
}

func render(typ string, v any) string {
	switch typ {
	case TypeNull:
		return "null"
	case TypeObject:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			// channels, funcs, cyclic values
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimSuffix(buf.String(), "\n")
	case TypeFunction:
		return reflect.TypeOf(v).String()
	case TypeNumber:
		if _, ok := v.(fmt.Stringer); ok {
			return fmt.Sprint(v)
		}
		rv := reflect.ValueOf(v)
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return strconv.FormatFloat(rv.Float(), 'f', -1, rv.Type().Bits())
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}
