// SPDX-License-Identifier: MIT

package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/openchannel/channel"
	"github.com/katalvlaran/openchannel/units"
)

// ErrInvalidScenario wraps every decoding and validation failure.
var ErrInvalidScenario = errors.New("scenario: invalid scenario")

// Kind selects the computation a scenario performs.
type Kind string

const (
	KindNormalDepth     Kind = "normal-depth"
	KindCriticalDepth   Kind = "critical-depth"
	KindAlternateDepths Kind = "alternate-depths"
	KindDischarge       Kind = "discharge"
	KindRating          Kind = "rating"
	KindProfile         Kind = "profile"
	KindJump            Kind = "jump"
	KindDesign          Kind = "design"
)

// Kinds lists every supported kind.
func Kinds() []Kind {
	return []Kind{
		KindNormalDepth, KindCriticalDepth, KindAlternateDepths, KindDischarge,
		KindRating, KindProfile, KindJump, KindDesign,
	}
}

// Design search defaults, matching a hand search over 0.5 m increments.
const (
	DefaultDesignStartWidth = 1.0
	DefaultDesignWidthStep  = 0.5
	DefaultDesignMaxWidth   = 20.0
)

// File is the top-level document.
type File struct {
	Scenarios []Scenario `yaml:"scenarios" validate:"required,min=1,unique=Name"`
}

// Channel names a shape and its dimensions. Width is the bottom width of a
// trapezoid.
type Channel struct {
	Shape              string `yaml:"shape" validate:"required,shape"`
	channel.Dimensions `yaml:",inline"`
}

// Geometry builds the channel section.
func (c Channel) Geometry() (channel.Geometry, error) {
	return channel.New(c.Shape, c.Dimensions)
}

// Scenario is one problem. Only the fields its Kind needs are read.
//
// Depth is the flow depth for discharge, the upstream depth for jump and is
// unused otherwise. MaxDepth caps the normal-depth bracket (normal-depth,
// design). Tolerance overrides the root-finding tolerance.
type Scenario struct {
	Name      string       `yaml:"name" validate:"required"`
	Kind      Kind         `yaml:"kind" validate:"required,oneof=normal-depth critical-depth alternate-depths discharge rating profile jump design"`
	Units     units.System `yaml:"units"`
	Channel   Channel      `yaml:"channel"`
	Discharge float64      `yaml:"discharge,omitempty" validate:"gte=0"`
	Manning   float64      `yaml:"manning,omitempty" validate:"gte=0"`
	Slope     float64      `yaml:"slope,omitempty" validate:"gte=0"`
	Depth     float64      `yaml:"depth,omitempty" validate:"gte=0"`
	Energy    float64      `yaml:"energy,omitempty" validate:"gte=0"`
	MaxDepth  float64      `yaml:"max_depth,omitempty" validate:"gte=0"`
	Tolerance float64      `yaml:"tolerance,omitempty" validate:"gte=0,lt=1"`
	Depths    []float64    `yaml:"depths,omitempty" validate:"omitempty,dive,gt=0"`

	Profile *ProfileSpec `yaml:"profile,omitempty"`
	Design  *DesignSpec  `yaml:"design,omitempty"`
	Jump    *JumpSpec    `yaml:"jump,omitempty"`
}

// ProfileSpec describes a march from a control section.
//
// The start depth is StartDepth, or StartCriticalRatio·yc when StartDepth is
// zero (a free overfall starts just above critical depth).
type ProfileSpec struct {
	StartX             float64 `yaml:"start_x"`
	StartDepth         float64 `yaml:"start_depth,omitempty" validate:"gte=0"`
	StartCriticalRatio float64 `yaml:"start_critical_ratio,omitempty" validate:"gte=0"`
	Step               float64 `yaml:"step" validate:"ne=0"`
	RelTolerance       float64 `yaml:"rel_tolerance,omitempty" validate:"gte=0,lt=1"`
	MaxSteps           int     `yaml:"max_steps,omitempty" validate:"gte=0"`
}

// DesignSpec bounds the bottom-width search. Zero widths take the Default
// design constants.
type DesignSpec struct {
	MaxDepth   float64 `yaml:"max_depth" validate:"gt=0"`
	StartWidth float64 `yaml:"start_width,omitempty" validate:"gte=0"`
	WidthStep  float64 `yaml:"width_step,omitempty" validate:"gte=0"`
	MaxWidth   float64 `yaml:"max_width,omitempty" validate:"gte=0"`
}

// JumpSpec gives the entering flow by velocity instead of depth:
// y1 = Q/(b·V1).
type JumpSpec struct {
	Velocity float64 `yaml:"velocity" validate:"gt=0"`
}

// widths returns the search bounds with defaults applied.
func (d DesignSpec) widths() (start, step, limit float64) {
	start, step, limit = d.StartWidth, d.WidthStep, d.MaxWidth
	if start == 0 {
		start = DefaultDesignStartWidth
	}
	if step == 0 {
		step = DefaultDesignWidthStep
	}
	if limit == 0 {
		limit = DefaultDesignMaxWidth
	}

	return start, step, limit
}

// validate is shared by every decode; it is safe for concurrent use.
var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
	})
	_ = validate.RegisterValidation("shape", validateShape)
	validate.RegisterStructValidation(validateKind, Scenario{})
}

func validateShape(fl validator.FieldLevel) bool {
	shape := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	for _, s := range channel.Shapes() {
		if s == shape {
			return true
		}
	}

	return false
}

// validateKind reports the fields a kind cannot do without.
func validateKind(sl validator.StructLevel) {
	s := sl.Current().Interface().(Scenario)
	need := func(v float64, field, name string) {
		if v <= 0 {
			sl.ReportError(v, name, field, "required_for", string(s.Kind))
		}
	}

	switch s.Kind {
	case KindNormalDepth:
		need(s.Discharge, "Discharge", "discharge")
		need(s.Manning, "Manning", "manning")
		need(s.Slope, "Slope", "slope")
	case KindCriticalDepth:
		need(s.Discharge, "Discharge", "discharge")
	case KindAlternateDepths:
		need(s.Discharge, "Discharge", "discharge")
		need(s.Energy, "Energy", "energy")
	case KindDischarge:
		need(s.Depth, "Depth", "depth")
		need(s.Manning, "Manning", "manning")
		need(s.Slope, "Slope", "slope")
	case KindRating:
		need(s.Manning, "Manning", "manning")
		need(s.Slope, "Slope", "slope")
		if len(s.Depths) == 0 {
			sl.ReportError(s.Depths, "depths", "Depths", "required_for", string(s.Kind))
		}
	case KindProfile:
		need(s.Discharge, "Discharge", "discharge")
		need(s.Manning, "Manning", "manning")
		need(s.Slope, "Slope", "slope")
		if s.Profile == nil {
			sl.ReportError(s.Profile, "profile", "Profile", "required_for", string(s.Kind))
		} else if s.Profile.StartDepth == 0 && s.Profile.StartCriticalRatio == 0 {
			sl.ReportError(s.Profile.StartDepth, "start_depth", "StartDepth", "required_without", "start_critical_ratio")
		}
	case KindJump:
		need(s.Discharge, "Discharge", "discharge")
		if s.Depth == 0 && s.Jump == nil {
			sl.ReportError(s.Depth, "depth", "Depth", "required_without", "jump")
		}
	case KindDesign:
		need(s.Discharge, "Discharge", "discharge")
		need(s.Manning, "Manning", "manning")
		need(s.Slope, "Slope", "slope")
		if s.Design == nil {
			sl.ReportError(s.Design, "design", "Design", "required_for", string(s.Kind))
		}
		shape := strings.ToLower(strings.TrimSpace(s.Channel.Shape))
		if shape != channel.ShapeRectangular && shape != channel.ShapeTrapezoidal {
			sl.ReportError(s.Channel.Shape, "shape", "Shape", "oneof", "rectangular trapezoidal")
		}
	}
}

// Validate checks s and builds its geometry once to catch bad dimensions.
func (s Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%w: %q: %s", ErrInvalidScenario, s.Name, describe(err))
	}
	if s.Kind == KindDesign {
		return nil // width is searched
	}
	if _, err := s.Channel.Geometry(); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidScenario, s.Name, err)
	}

	return nil
}

// Parse decodes and validates a scenario document. Unknown keys are errors.
func Parse(data []byte) (File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, fmt.Errorf("%w: empty document", ErrInvalidScenario)
		}

		return File{}, fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}

	if err := validate.Struct(f); err != nil {
		return File{}, fmt.Errorf("%w: %s", ErrInvalidScenario, describe(err))
	}
	for _, s := range f.Scenarios {
		if err := s.Validate(); err != nil {
			return File{}, err
		}
	}

	return f, nil
}

// Load reads and parses the file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("scenario: read %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}

	return f, nil
}

// describe flattens validator errors into one line.
func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Namespace() + " fails " + fe.Tag()
		if fe.Param() != "" {
			msg += "=" + fe.Param()
		}
		parts = append(parts, msg)
	}

	return strings.Join(parts, "; ")
}
