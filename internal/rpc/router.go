// Package rpc exposes named procedures over HTTP. A procedure is a query or a
// mutation with a typed input; admin procedures reject non-admin callers
// before the input is looked at.
package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/metrics"
	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
)

// Kind distinguishes read procedures from writes.
type Kind int

const (
	KindQuery Kind = iota
	KindMutation
)

func (k Kind) String() string {
	if k == KindMutation {
		return "mutation"
	}
	return "query"
}

// Caller is the ambient identity of a request. User is nil for anonymous
// callers.
type Caller struct {
	User *models.User
}

// IsAdmin reports whether the caller carries the admin role.
func (c Caller) IsAdmin() bool {
	return c.User.IsAdmin()
}

// Empty is the input type of procedures that take no input.
type Empty struct{}

type procedure struct {
	name     string
	kind     Kind
	admin    bool
	varTag   string
	optional bool
	call     func(ctx context.Context, caller Caller, raw []byte) (any, error)
}

// Option configures a procedure at registration.
type Option func(*procedure)

// AdminOnly restricts the procedure to callers with the admin role.
func AdminOnly() Option {
	return func(p *procedure) { p.admin = true }
}

// Validate applies a validator tag to a scalar input, e.g. "required,gt=0".
func Validate(tag string) Option {
	return func(p *procedure) { p.varTag = tag }
}

// Router holds the registered procedures.
type Router struct {
	procs    map[string]*procedure
	validate *validator.Validate
	log      *logrus.Entry
}

// NewRouter returns an empty Router.
func NewRouter() *Router {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	return &Router{
		procs:    make(map[string]*procedure),
		validate: v,
		log:      logging.For("rpc"),
	}
}

// Func is the body of a procedure.
type Func[In any] func(ctx context.Context, caller Caller, in In) (any, error)

// Query registers a read procedure.
func Query[In any](r *Router, name string, fn Func[In], opts ...Option) {
	register(r, name, KindQuery, fn, opts)
}

// Mutation registers a write procedure.
func Mutation[In any](r *Router, name string, fn Func[In], opts ...Option) {
	register(r, name, KindMutation, fn, opts)
}

func register[In any](r *Router, name string, kind Kind, fn Func[In], opts []Option) {
	if _, exists := r.procs[name]; exists {
		panic(fmt.Sprintf("rpc: procedure %q registered twice", name))
	}

	p := &procedure{name: name, kind: kind}
	for _, opt := range opts {
		opt(p)
	}

	var zero In
	p.optional = isOptional(reflect.TypeOf(&zero).Elem())

	p.call = func(ctx context.Context, caller Caller, raw []byte) (any, error) {
		var in In
		if err := r.decode(p, raw, &in); err != nil {
			return nil, err
		}
		return fn(ctx, caller, in)
	}
	r.procs[name] = p
}

// isOptional reports whether an absent input decodes to a usable zero value.
func isOptional(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Struct:
		return true
	}
	return false
}

func (r *Router) decode(p *procedure, raw []byte, dst any) error {
	raw = []byte(strings.TrimSpace(string(raw)))
	absent := len(raw) == 0 || string(raw) == "null"

	if absent && !p.optional {
		return Invalidf("input is required")
	}
	if !absent {
		if err := json.Unmarshal(raw, dst); err != nil {
			return Invalidf("invalid input: %v", err)
		}
	}

	if p.varTag != "" {
		v := reflect.ValueOf(dst).Elem()
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return nil
			}
			v = v.Elem()
		}
		if err := r.validate.Var(v.Interface(), p.varTag); err != nil {
			return fromValidator(err, "input")
		}
		return nil
	}

	target := reflect.ValueOf(dst).Elem()
	if target.Kind() == reflect.Pointer {
		if target.IsNil() {
			return nil
		}
		target = target.Elem()
	}
	if target.Kind() == reflect.Struct {
		if err := r.validate.Struct(target.Addr().Interface()); err != nil {
			return fromValidator(err, "input")
		}
	}
	return nil
}

// Call runs a procedure: role gate, then input decoding and validation, then
// the procedure body.
func (r *Router) Call(ctx context.Context, kind Kind, name string, caller Caller, raw []byte) (out any, err error) {
	p, ok := r.procs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errUnknownProcedure, name)
	}
	if p.kind != kind {
		return nil, fmt.Errorf("%w: %s is a %s", errWrongMethod, name, p.kind)
	}

	start := time.Now()
	defer func() {
		metrics.RecordProcedure(name, outcome(err), time.Since(start))
	}()

	if p.admin && !caller.IsAdmin() {
		return nil, ErrUnauthorized
	}

	out, err = p.call(ctx, caller, raw)
	if err != nil && outcome(err) == "error" {
		r.log.WithFields(logrus.Fields{"procedure": name, "kind": kind.String()}).WithError(err).Error("procedure failed")
	}
	return out, err
}

// Procedures lists the registered procedure names.
func (r *Router) Procedures() []string {
	names := make([]string, 0, len(r.procs))
	for name := range r.procs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case IsValidation(err):
		return "invalid"
	case errors.Is(err, store.ErrUnavailable):
		return "unavailable"
	default:
		return "error"
	}
}
