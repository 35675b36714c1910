package parse

import (
	"errors"

	"github.com/sublee/ctorgen"
	"github.com/sublee/ctorgen/internal/codefmt"
)

// Validate checks the shape of the marked types. It collects all errors
// instead of stopping at the first error, and returns the aggregates which
// passed.
//
// Options on fields are not checked here. They are checked while planning
// each constructor.
func (p *Parser) Validate(aggs []*Aggregate) ([]*Aggregate, error) {
	var valid []*Aggregate
	var errs error

	ctors := make(map[string]*Aggregate)
	for _, agg := range aggs {
		err := errors.Join(
			p.validateShape(agg),
			p.validateTypeDirectives(agg),
			p.validateCtorName(agg, ctors),
		)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		valid = append(valid, agg)
	}

	return valid, errs
}

// validateShape checks if the type is a struct type with at least one field
// which can be set by a composite literal.
func (p *Parser) validateShape(agg *Aggregate) error {
	if agg.Spec.Assign.IsValid() {
		err := codefmt.Errorf(p, agg, "only struct types are supported")
		return codefmt.WithNote(err, "%s is a type alias", agg.Name())
	}

	if agg.Struct == nil {
		return codefmt.Errorf(p, agg, "only struct types are supported")
	}

	if agg.Struct.NumFields() == 0 {
		err := codefmt.Errorf(p, agg, "struct without fields is not supported")
		err = codefmt.WithHelp(err, "use the zero value %s{} instead", agg.Name())
		return codefmt.WithNote(err, "a constructor needs at least one field")
	}

	var errs error
	for _, m := range agg.Members {
		if m.Var.Pkg() != p.pkg.Types && !m.Var.Exported() {
			err := codefmt.Errorf(p, agg, "cannot set unexported field %s of package %s", m.Name(), m.Var.Pkg().Name())
			errs = errors.Join(errs, codefmt.WithNote(err, "the fields of %s are declared in another package", agg.Name()))
		}
	}
	return errs
}

// validateTypeDirectives rejects "//ctor:" directives on the type itself.
func (p *Parser) validateTypeDirectives(agg *Aggregate) error {
	var errs error
	for _, dir := range agg.TypeDirectives {
		err := codefmt.Errorf(p, dir, "`ctor` options are not supported on the type itself")
		errs = errors.Join(errs, codefmt.WithHelp(err, "move the option to a field of %s", agg.Name()))
	}
	return errs
}

// validateCtorName checks if the constructor name is free in the package
// scope. ctors holds the constructor names of the aggregates validated so far.
func (p *Parser) validateCtorName(agg *Aggregate, ctors map[string]*Aggregate) error {
	if agg.Ctor == "init" || agg.Ctor == "main" {
		err := codefmt.Errorf(p, agg.Marker, "constructor name %q is reserved", agg.Ctor)
		return codefmt.WithHelp(err, "write %s with another name", ctorgen.GenerateDirective)
	}

	if prev, ok := ctors[agg.Ctor]; ok {
		err := codefmt.Errorf(p, agg.Marker, "constructor name %q is already declared", agg.Ctor)
		err = codefmt.WithHelp(err, "write %s with another name", ctorgen.GenerateDirective)
		return codefmt.WithNote(err, "also generated for %o at %b", prev, prev)
	}
	ctors[agg.Ctor] = agg

	obj := p.pkg.Types.Scope().Lookup(agg.Ctor)
	if obj == nil || p.IsGenerated(obj.Pos()) {
		return nil
	}
	err := codefmt.Errorf(p, agg.Marker, "constructor name %q is already declared", agg.Ctor)
	err = codefmt.WithHelp(err, "write %s with another name", ctorgen.GenerateDirective)
	return codefmt.WithNote(err, "declared at %b", obj)
}
