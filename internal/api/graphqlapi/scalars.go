package graphqlapi

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/dennis-koster/dlf-graphql-example/internal/resolver"
)

// dateTimeScalar accepts RFC 3339 as well as "Y-m-d H:i:s" and "Y-m-d"
// input. Output is always RFC 3339.
var dateTimeScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "DateTime",
	Description: "A timestamp. Accepts RFC 3339, \"2006-01-02 15:04:05\" or \"2006-01-02\" (UTC); serialized as RFC 3339.",
	Serialize:   serializeDateTime,
	ParseValue:  parseDateTime,
	ParseLiteral: func(valueAST ast.Value) any {
		if v, ok := valueAST.(*ast.StringValue); ok {
			return parseDateTime(v.Value)
		}
		return nil
	},
})

func serializeDateTime(value any) any {
	switch v := value.(type) {
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case *time.Time:
		if v == nil {
			return nil
		}
		return v.Format(time.RFC3339Nano)
	}
	return nil
}

// parseDateTime returns nil for unparseable input so graphql-go reports the
// argument as invalid before any resolver runs.
func parseDateTime(value any) any {
	switch v := value.(type) {
	case string:
		t, err := resolver.ParseTimestamp(v)
		if err != nil {
			return nil
		}
		return t
	case *string:
		if v == nil {
			return nil
		}
		return parseDateTime(*v)
	case time.Time:
		return v
	}
	return nil
}
