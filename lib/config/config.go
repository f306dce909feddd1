package config

import (
	"github.com/gravitational/trace"

	"gopkg.in/go-playground/validator.v9"
)

type defaulter interface {
	CheckAndSetDefaults() error
}

// CheckAndSetDefaults validates parameters according to struct field tags and
// custom logic specified by implementing the defaulter interface.
//
// Defaults are applied first so that required fields can be satisfied by them.
func CheckAndSetDefaults(param interface{}) error {
	if d, ok := param.(defaulter); ok {
		if err := d.CheckAndSetDefaults(); err != nil {
			return trace.Wrap(err)
		}
	}
	if err := validator.New().Struct(param); err != nil {
		return trace.BadParameter("invalid configuration: %v", err)
	}
	return nil
}
