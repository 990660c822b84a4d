package params

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/ramcloud-tools/rcprofile/pkg/cloudlab"
	"github.com/ramcloud-tools/rcprofile/pkg/topology"
	"github.com/spf13/cast"
)

// Source is where raw parameter values come from, usually a *viper.Viper.
// Values are coerced by Bind, so a Source may hand out strings from the environment.
type Source interface {
	Get(key string) interface{}
}

type binding struct {
	WorkerCount  int    `param:"num_rcnodes" validate:"gte=0"`
	HardwareType string `param:"hardware_type" validate:"required,hardwaretype"`
	DiskImage    string `param:"image" validate:"required,diskimage"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("param")
	})

	if err := v.RegisterValidation("hardwaretype", func(fl validator.FieldLevel) bool {
		return cloudlab.IsHardwareType(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("diskimage", func(fl validator.FieldLevel) bool {
		return cloudlab.IsDiskImage(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// Bind reads and validates the profile parameters. Invalid input never reaches the topology builder.
func Bind(source Source, logger log.Logger) (topology.ClusterSpec, error) {
	raw := binding{}
	var err error

	if raw.WorkerCount, err = toInt(source.Get(ClusterSizeKey)); err != nil {
		return topology.ClusterSpec{}, errors.Wrapf(err, "parameter %s must be an integer", ClusterSizeKey)
	}
	if raw.HardwareType, err = cast.ToStringE(source.Get(HardwareTypeKey)); err != nil {
		return topology.ClusterSpec{}, errors.Wrapf(err, "parameter %s must be a string", HardwareTypeKey)
	}
	if raw.DiskImage, err = cast.ToStringE(source.Get(ImageKey)); err != nil {
		return topology.ClusterSpec{}, errors.Wrapf(err, "parameter %s must be a string", ImageKey)
	}

	if err := validate.Struct(raw); err != nil {
		return topology.ClusterSpec{}, describeValidationError(err)
	}

	if raw.WorkerCount < ReplicatedClusterSize {
		level.Warn(logger).Log(
			"msg", "cluster is too small for a replication factor of 3",
			ClusterSizeKey, raw.WorkerCount,
			"recommended", ReplicatedClusterSize,
		)
	}

	spec := topology.ClusterSpec{
		WorkerCount:  raw.WorkerCount,
		HardwareType: topology.HardwareType(raw.HardwareType),
		DiskImage:    topology.DiskImage(raw.DiskImage),
	}
	level.Debug(logger).Log("msg", "parameters bound", "workers", spec.WorkerCount, "hardware_type", spec.HardwareType, "image", spec.DiskImage)

	return spec, nil
}

// toInt accepts integers and their decimal string form only. Leading zeros are kept decimal,
// floats must be integral and booleans are refused.
func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case bool:
		return 0, fmt.Errorf("unable to cast %#v of type %T to int", v, v)
	case float32, float64:
		f := cast.ToFloat64(v)
		if f != math.Trunc(f) {
			return 0, fmt.Errorf("%v is not a whole number", v)
		}
	}

	return cast.ToIntE(value)
}

func describeValidationError(err error) error {
	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, "unable to validate parameters")
	}

	var problems []string
	for _, fieldError := range fieldErrors {
		problems = append(problems, describeFieldError(fieldError))
	}

	return errors.New(strings.Join(problems, "; "))
}

func describeFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "gte":
		return fmt.Sprintf("parameter %s must be at least %s, %v was provided", fieldError.Field(), fieldError.Param(), fieldError.Value())
	case "required":
		return fmt.Sprintf("parameter %s is required", fieldError.Field())
	case "hardwaretype":
		return fmt.Sprintf("hardware type '%v' is not supported, use one of %s", fieldError.Value(), strings.Join(cloudlab.Values(cloudlab.HardwareTypes), ", "))
	case "diskimage":
		return fmt.Sprintf("disk image '%v' is not supported, use one of %s", fieldError.Value(), strings.Join(cloudlab.Values(cloudlab.DiskImages), ", "))
	default:
		return fmt.Sprintf("parameter %s failed the %s check", fieldError.Field(), fieldError.Tag())
	}
}
