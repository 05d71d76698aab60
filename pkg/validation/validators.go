package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	defaultValidate *validator.Validate
	defaultOnce     sync.Once
)

// Default returns the shared validator instance configured by RegisterValidators
func Default() *validator.Validate {
	defaultOnce.Do(func() {
		defaultValidate = validator.New()
		RegisterValidators(defaultValidate)
	})
	return defaultValidate
}

// RegisterValidators configures a validator instance so field errors report
// the JSON name clients sent (nombre, correo, ...) instead of the Go field name
func RegisterValidators(v *validator.Validate) {
	v.RegisterTagNameFunc(jsonTagName)
}

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
