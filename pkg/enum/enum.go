package enum

import (
	"fmt"
	"reflect"
	"sort"
)

var enumManager = map[string]any{}

type enum[T comparable] struct {
	toEnum   map[string]T
	toString map[T]string
}

// New registers value under name so it can be parsed back with ToEnum.
func New[T comparable](value T, name string) T {
	t := reflect.TypeOf(value)
	key := t.PkgPath() + "." + t.Name()
	if _, ok := enumManager[key]; !ok {
		enumManager[key] = enum[T]{toEnum: make(map[string]T), toString: make(map[T]string)}
	}

	e := enumManager[key].(enum[T])
	e.toEnum[name] = value
	e.toString[value] = name
	return value
}

func ToEnum[T comparable](s string) (T, error) {
	var defaultT T
	e, ok := lookup[T]()
	if !ok {
		return defaultT, fmt.Errorf("not found enum type %T", defaultT)
	}

	t, ok := e.toEnum[s]
	if !ok {
		return defaultT, fmt.Errorf("not found value %s in enum %T", s, defaultT)
	}

	return t, nil
}

// ToString returns the registered name of value, or an empty string.
func ToString[T comparable](value T) string {
	e, ok := lookup[T]()
	if !ok {
		return ""
	}

	return e.toString[value]
}

// Names lists every registered name of T in lexical order.
func Names[T comparable]() []string {
	e, ok := lookup[T]()
	if !ok {
		return nil
	}

	names := make([]string, 0, len(e.toEnum))
	for name := range e.toEnum {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func lookup[T comparable]() (enum[T], bool) {
	var defaultT T
	t := reflect.TypeOf(defaultT)
	e, ok := enumManager[t.PkgPath()+"."+t.Name()]
	if !ok {
		return enum[T]{}, false
	}

	return e.(enum[T]), true
}
