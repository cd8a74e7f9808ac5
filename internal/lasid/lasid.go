// Package lasid supplements the required six built-ins with uuid, a
// zero-argument call into google/uuid.
package lasid

import (
	"github.com/google/uuid"

	"las/internal/lasast"
	"las/internal/lasrr"
	"las/internal/lasspan"
	"las/internal/lasvalue"
)

func init() {
	lasast.RegisterBuiltin("uuid", uuidBuiltin)
}

func uuidBuiltin(sp lasspan.Span, args []*lasvalue.Value) (*lasvalue.Value, error) {
	if len(args) != 0 {
		return nil, lasrr.Atf(lasrr.WrongNumberOfArguments, sp, "uuid expects 0 arguments, got %d", len(args))
	}
	return lasvalue.NewString(uuid.NewString()), nil
}
