package validate

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct runs the tag-based validation rules of the given request struct.
func Struct(s any) error {
	return v.Struct(s)
}
