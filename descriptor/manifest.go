package descriptor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/oasgen/internal/httputil"
	"github.com/erraggy/oasgen/internal/maputil"
	"github.com/erraggy/oasgen/oaserrors"
)

// Manifest is the on-disk form of an API: declared object types, exception
// types, advice units and controllers. YAML and JSON are both accepted.
type Manifest struct {
	Info        InfoSpec                 `yaml:"info"`
	Types       map[string]TypeSpec      `yaml:"types" validate:"dive"`
	Exceptions  map[string]ExceptionSpec `yaml:"exceptions" validate:"dive"`
	Advices     []AdviceSpec             `yaml:"advices" validate:"dive"`
	Controllers []ControllerSpec         `yaml:"controllers" validate:"dive"`
}

// InfoSpec is document metadata.
type InfoSpec struct {
	Title       string `yaml:"title"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
}

// TypeSpec declares an object type.
type TypeSpec struct {
	Fields []FieldSpec `yaml:"fields" validate:"dive"`
}

// FieldSpec declares one object field.
type FieldSpec struct {
	Name        string         `yaml:"name" validate:"required"`
	Type        string         `yaml:"type" validate:"required"`
	Constraints ConstraintSpec `yaml:"constraints"`
	Static      bool           `yaml:"static"`
}

// ConstraintSpec lists validation annotations. Keys match ConstraintKind
// names.
type ConstraintSpec struct {
	Size     *SizeSpec `yaml:"size"`
	Min      *int64    `yaml:"min"`
	Max      *int64    `yaml:"max"`
	Pattern  string    `yaml:"pattern"`
	NotNull  bool      `yaml:"notNull"`
	NotBlank bool      `yaml:"notBlank"`
	NotEmpty bool      `yaml:"notEmpty"`
}

// SizeSpec holds the bounds of a size constraint. Either bound may be absent.
type SizeSpec struct {
	Min *int64 `yaml:"min" validate:"omitempty,min=0"`
	Max *int64 `yaml:"max" validate:"omitempty,min=0"`
}

// ExceptionSpec declares the status an exception type carries itself.
type ExceptionSpec struct {
	Status int    `yaml:"status" validate:"omitempty,min=100,max=599"`
	Reason string `yaml:"reason"`
}

// AdviceSpec declares a unit of global error handlers.
type AdviceSpec struct {
	Name          string             `yaml:"name" validate:"required"`
	ErrorHandlers []ErrorHandlerSpec `yaml:"errorHandlers" validate:"dive"`
}

// ErrorHandlerSpec declares an error handler.
type ErrorHandlerSpec struct {
	Name       string   `yaml:"name" validate:"required"`
	Exceptions []string `yaml:"exceptions" validate:"required,min=1,dive,required"`
	Status     int      `yaml:"status" validate:"omitempty,min=100,max=599"`
	Reason     string   `yaml:"reason"`
	Returns    string   `yaml:"returns"`
}

// ControllerSpec declares a class of handlers. Path prefixes every handler
// path.
type ControllerSpec struct {
	Name          string             `yaml:"name" validate:"required"`
	Path          string             `yaml:"path"`
	Handlers      []HandlerSpec      `yaml:"handlers" validate:"dive"`
	ErrorHandlers []ErrorHandlerSpec `yaml:"errorHandlers" validate:"dive"`
}

// HandlerSpec declares one handler method.
type HandlerSpec struct {
	Name              string         `yaml:"name" validate:"required"`
	Method            string         `yaml:"method" validate:"required,httpmethod"`
	Path              string         `yaml:"path"`
	Params            []ParamSpec    `yaml:"params" validate:"dive"`
	Returns           string         `yaml:"returns"`
	ReturnConstraints ConstraintSpec `yaml:"returnConstraints"`
	Status            int            `yaml:"status" validate:"omitempty,min=100,max=599"`
	Reason            string         `yaml:"reason"`
}

// ParamSpec declares one handler parameter. In is one of path, query,
// header, body or none.
type ParamSpec struct {
	Name        string         `yaml:"name"`
	In          string         `yaml:"in" validate:"required,oneof=path query header body none"`
	Type        string         `yaml:"type"`
	Required    *bool          `yaml:"required"`
	Constraints ConstraintSpec `yaml:"constraints"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("httpmethod", func(fl validator.FieldLevel) bool {
		_, ok := httputil.NormalizeMethod(fl.Field().String())
		return ok
	})
	return v
}

// LoadFile reads and resolves the manifest at filePath.
func LoadFile(filePath string) (*API, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: filePath, Message: "failed to read manifest", Cause: err}
	}
	return LoadBytes(data, filePath)
}

// Load reads and resolves a manifest from r. name identifies the source in
// errors.
func Load(r io.Reader, name string) (*API, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "failed to read manifest", Cause: err}
	}
	return LoadBytes(data, name)
}

// LoadBytes decodes, validates and resolves a manifest.
func LoadBytes(data []byte, name string) (*API, error) {
	m, err := DecodeManifest(data, name)
	if err != nil {
		return nil, err
	}
	return m.Resolve(), nil
}

// DecodeManifest decodes and validates a manifest without resolving it.
func DecodeManifest(data []byte, name string) (*Manifest, error) {
	var m Manifest
	// yaml.Unmarshal handles both YAML and JSON
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, &oaserrors.ParseError{Path: name, Message: "invalid manifest", Cause: err}
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest structure. Every problem is reported as an
// *oaserrors.ValidationError; several are joined.
func (m *Manifest) Validate() error {
	err := validate.Struct(m)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &oaserrors.ValidationError{Message: "invalid manifest", Cause: err}
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, &oaserrors.ValidationError{
			Path:    fieldPath(fe),
			Value:   fe.Value(),
			Message: describeFieldError(fe),
		})
	}
	return errors.Join(errs...)
}

// fieldPath drops the root type name from a validator namespace, so
// "Manifest.controllers[0].name" becomes "controllers[0].name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "httpmethod":
		return "unsupported HTTP method"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s=%s validation", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}

// Resolve converts the manifest into descriptors. Declared types are
// resolved first so every reference to a name shares one descriptor.
func (m *Manifest) Resolve() *API {
	tt := &typeTable{objects: make(map[string]*TypeDescriptor, len(m.Types))}
	names := maputil.SortedKeys(m.Types)
	for _, name := range names {
		tt.objects[name] = &TypeDescriptor{Kind: KindObject, Name: name}
	}
	for _, name := range names {
		spec := m.Types[name]
		obj := tt.objects[name]
		obj.Fields = make([]Field, 0, len(spec.Fields))
		for _, f := range spec.Fields {
			obj.Fields = append(obj.Fields, Field{
				Name:        f.Name,
				Type:        tt.parse(f.Type),
				Constraints: f.Constraints.set(),
				Static:      f.Static,
			})
		}
	}

	api := &API{Info: Info{Title: m.Info.Title, Version: m.Info.Version, Description: m.Info.Description}}
	for _, a := range m.Advices {
		adv := Advice{Name: a.Name}
		for _, eh := range a.ErrorHandlers {
			adv.ErrorHandlers = append(adv.ErrorHandlers, m.errorHandler(tt, a.Name, eh, ScopeGlobal))
		}
		api.Advices = append(api.Advices, adv)
	}
	for _, c := range m.Controllers {
		ctl := Controller{Name: c.Name}
		for _, h := range c.Handlers {
			ctl.Handlers = append(ctl.Handlers, handler(tt, c, h))
		}
		for _, eh := range c.ErrorHandlers {
			ctl.ErrorHandlers = append(ctl.ErrorHandlers, m.errorHandler(tt, c.Name, eh, ScopeLocal))
		}
		api.Controllers = append(api.Controllers, ctl)
	}
	return api
}

func (m *Manifest) errorHandler(tt *typeTable, owner string, eh ErrorHandlerSpec, scope Scope) ErrorHandlerDescriptor {
	out := ErrorHandlerDescriptor{
		Owner:  owner,
		Name:   eh.Name,
		Status: eh.Status,
		Reason: eh.Reason,
		Return: tt.parse(eh.Returns),
		Scope:  scope,
	}
	for _, name := range eh.Exceptions {
		exc := ExceptionType{Name: name}
		if spec, ok := m.Exceptions[name]; ok {
			exc.Status = spec.Status
			exc.Reason = spec.Reason
		}
		out.Exceptions = append(out.Exceptions, exc)
	}
	return out
}

func handler(tt *typeTable, c ControllerSpec, h HandlerSpec) HandlerDescriptor {
	out := HandlerDescriptor{
		Owner:             c.Name,
		Name:              h.Name,
		Method:            strings.ToUpper(h.Method),
		Path:              JoinPath(c.Path, h.Path),
		Return:            tt.parse(h.Returns),
		ReturnConstraints: h.ReturnConstraints.set(),
		Status:            h.Status,
		Reason:            h.Reason,
	}
	for _, p := range h.Params {
		out.Params = append(out.Params, ParamDescriptor{
			Binding:     ParseBinding(p.In),
			Name:        p.Name,
			Type:        tt.parse(p.Type),
			Constraints: p.Constraints.set(),
			Required:    p.Required,
		})
	}
	return out
}

func (c ConstraintSpec) set() ConstraintSet {
	var cs []Constraint
	if c.Size != nil {
		cs = append(cs, Size(c.Size.Min, c.Size.Max))
	}
	if c.Min != nil {
		cs = append(cs, Min(*c.Min))
	}
	if c.Max != nil {
		cs = append(cs, Max(*c.Max))
	}
	if c.Pattern != "" {
		cs = append(cs, Pattern(c.Pattern))
	}
	if c.NotNull {
		cs = append(cs, NotNull())
	}
	if c.NotBlank {
		cs = append(cs, NotBlank())
	}
	if c.NotEmpty {
		cs = append(cs, NotEmpty())
	}
	return NewConstraintSet(cs...)
}

// JoinPath joins a class-level route prefix and a handler route into one
// absolute path with no doubled or trailing slashes.
func JoinPath(prefix, route string) string {
	return path.Join("/", prefix, route)
}
