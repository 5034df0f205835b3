package core

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/signalsfoundry/cbtc-topology/model"
)

// MinShrinkBackNeighbors is the degree at or below which shrink-back
// stops pruning.
const MinShrinkBackNeighbors = 3

var (
	ErrInvalidConfig   = errors.New("invalid topology config")
	ErrEmptyNetwork    = errors.New("network has no nodes")
	ErrDuplicateNodeID = errors.New("duplicate node ID")
	ErrInvalidPosition = errors.New("invalid node position")
	ErrNodeIndex       = errors.New("node index out of range")
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// finite rejects NaN and ±Inf.
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

// Config holds the run-wide CBTC parameters.
type Config struct {
	// ConeAngle is the largest permitted gap between angularly adjacent
	// neighbors, in radians, within (0, 2π].
	ConeAngle float64 `json:"cone_angle" yaml:"cone_angle" toml:"cone_angle" validate:"finite,gt=0,lte=6.283185307179586"`
	// InitialPower is the first radius tried during escalation.
	InitialPower float64 `json:"initial_power" yaml:"initial_power" toml:"initial_power" validate:"finite,gt=0"`
	// MaxPower is the power ceiling; no attempt uses a larger radius.
	MaxPower float64 `json:"max_power" yaml:"max_power" toml:"max_power" validate:"finite,gtefield=InitialPower"`
	// GrowthFactor multiplies the power after each failed attempt.
	GrowthFactor float64 `json:"growth_factor" yaml:"growth_factor" toml:"growth_factor" validate:"finite,gt=1"`

	ShrinkBack        bool `json:"shrink_back" yaml:"shrink_back" toml:"shrink_back"`
	AsymmetricRemoval bool `json:"asymmetric_removal" yaml:"asymmetric_removal" toml:"asymmetric_removal"`
}

// DefaultConfig returns the parameters of the reference simulation:
// α = 2π/3, power from 2 up to 20 in steps of ×1.5, no optional passes.
func DefaultConfig() Config {
	return Config{
		ConeAngle:    FullTurn / 3,
		InitialPower: model.PaperInitialPower,
		MaxPower:     model.PaperMaxPower,
		GrowthFactor: model.PaperGrowthFactor,
	}
}

// ConfigFromScenario extracts the run parameters of a scenario definition.
func ConfigFromScenario(def model.ScenarioDefinition) Config {
	return Config{
		ConeAngle:         def.ConeAngle,
		InitialPower:      def.InitialPower,
		MaxPower:          def.MaxPower,
		GrowthFactor:      def.GrowthFactor,
		ShrinkBack:        def.ShrinkBack,
		AsymmetricRemoval: def.AsymmetricRemoval,
	}
}

// Validate reports the first invalid field, wrapped in ErrInvalidConfig.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return formatValidationError(err)
	}
	return nil
}

func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	e := validationErrs[0]
	field := e.Field()
	param := e.Param()
	switch e.Tag() {
	case "finite":
		return fmt.Errorf("%w: %s must be a finite number, got %v", ErrInvalidConfig, field, e.Value())
	case "gt":
		return fmt.Errorf("%w: %s must be greater than %s, got %v", ErrInvalidConfig, field, param, e.Value())
	case "lte":
		return fmt.Errorf("%w: %s must not exceed 2π, got %v", ErrInvalidConfig, field, e.Value())
	case "gtefield":
		return fmt.Errorf("%w: %s must be at least %s, got %v", ErrInvalidConfig, field, param, e.Value())
	default:
		return fmt.Errorf("%w: %s failed %q", ErrInvalidConfig, field, e.Tag())
	}
}
