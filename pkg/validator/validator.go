package validator

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"sos-srv/pkg/errors"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterCustomValidations adds the coordinate tags to validate and
// reports fields by their JSON name.
func RegisterCustomValidations(validate *validator.Validate) error {
	validate.RegisterTagNameFunc(jsonName)
	if err := validate.RegisterValidation("lat", validateLat); err != nil {
		return err
	}
	return validate.RegisterValidation("lng", validateLng)
}

// RegisterGin installs the custom tags on gin's binding engine.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("pkg.validator.RegisterGin: unexpected binding engine %T", binding.Validator.Engine())
	}
	return RegisterCustomValidations(v)
}

func jsonName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func validateLat(fl validator.FieldLevel) bool {
	lat := fl.Field().Float()
	return lat >= -90 && lat <= 90
}

func validateLng(fl validator.FieldLevel) bool {
	lng := fl.Field().Float()
	return lng >= -180 && lng <= 180
}

// Collect converts binding failures into a ValidationErrorCollector keyed by
// the JSON field path. Errors that are not field validation failures, such
// as malformed JSON, become a single "body" entry.
func Collect(err error) *errors.ValidationErrorCollector {
	collector := errors.NewValidationErrorCollector()

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return collector.Add(errors.NewValidationError(http.StatusBadRequest, "body", "invalid request body"))
	}
	for _, fe := range verrs {
		collector.Add(errors.NewValidationError(http.StatusBadRequest, field(fe), message(fe)))
	}
	return collector
}

// field drops the root struct name from the namespace, "req.location.lat"
// becomes "location.lat".
func field(fe validator.FieldError) string {
	if _, rest, ok := strings.Cut(fe.Namespace(), "."); ok {
		return rest
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "lat":
		return "must be a latitude between -90 and 90"
	case "lng":
		return "must be a longitude between -180 and 180"
	default:
		return "failed " + fe.Tag() + " validation"
	}
}
