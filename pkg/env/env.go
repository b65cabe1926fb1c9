package env

import (
	"fmt"
	"os"

	pkgstrings "github.com/klwxsrx/go-auth-session/pkg/strings"
)

func Must[T any](val T, err error) T {
	if err != nil {
		panic(fmt.Errorf("parse environment: %w", err))
	}
	return val
}

func Parse[T pkgstrings.SupportedValueParsingTypes](key string) (T, error) {
	var result T
	str, ok := os.LookupEnv(key)
	if !ok {
		return result, fmt.Errorf("env %s with type %T not found", key, result)
	}

	result, err := pkgstrings.ParseTypedValue[T](str)
	if err != nil {
		return result, fmt.Errorf("env %s with type %T has invalid value: %w", key, result, err)
	}

	return result, nil
}

// ParseOptional returns nil without error when the variable is not set.
func ParseOptional[T pkgstrings.SupportedValueParsingTypes](key string) (*T, error) {
	if _, ok := os.LookupEnv(key); !ok {
		return nil, nil
	}

	result, err := Parse[T](key)
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func ParseOrDefault[T pkgstrings.SupportedValueParsingTypes](key string, defaultValue T) (T, error) {
	result, err := ParseOptional[T](key)
	if err != nil {
		return defaultValue, err
	}
	if result == nil {
		return defaultValue, nil
	}

	return *result, nil
}
