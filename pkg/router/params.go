package router

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/vango-dev/dot/internal/errors"
)

// Params holds the decoded values of a match's ":name" segments.
type Params map[string]string

// Get returns the named parameter, or "".
func (p Params) Get(name string) string {
	return p[name]
}

// Int returns the named parameter parsed as a base 10 integer.
func (p Params) Int(name string) (int, error) {
	v, ok := p[name]
	if !ok {
		return 0, errors.New("E012").WithDetail("missing :%s", name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New("E012").WithDetail(":%s = %q is not an integer", name, v)
	}
	return n, nil
}

// Decode fills the fields of the struct target points to from their
// `param:"name"` tags. Supported kinds are string, signed and unsigned
// integers, floats and bool. Parameters without a field, and fields without
// a parameter, are left alone.
//
//	var p struct {
//	    ID int `param:"id"`
//	}
//	err := match.Params.Decode(&p)
func (p Params) Decode(target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer {
		return errors.New("E012").WithDetail("target must be a pointer, got %s", v.Kind())
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return errors.New("E012").WithDetail("target must point to a struct, got %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("param")
		if name == "" {
			continue
		}
		value, ok := p[name]
		if !ok {
			continue
		}
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if err := setField(fv, value); err != nil {
			return errors.New("E012").WithDetail(":%s", name).Wrap(err)
		}
	}
	return nil
}

func setField(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %s", value)
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid unsigned integer: %s", value)
		}
		field.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid float: %s", value)
		}
		field.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean: %s", value)
		}
		field.SetBool(b)

	default:
		return fmt.Errorf("unsupported type: %s", field.Kind())
	}
	return nil
}
