package strings

import "github.com/iancoleman/strcase"

// ToScreamingSnakeCase converts names like "auth-gateway" into environment variable prefixes: AUTH_GATEWAY.
func ToScreamingSnakeCase(s string) string {
	return strcase.ToScreamingSnake(s)
}
