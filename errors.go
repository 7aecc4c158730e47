package flatten

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every *InvalidArgumentError.
var ErrInvalidArgument = errors.New("flatten: invalid argument")

// InvalidArgumentError reports a malformed option, raised before any
// traversal takes place.
type InvalidArgumentError struct {
	Field  string
	Value  any
	Reason string
	// Err is the underlying cause, such as a filter compile failure.
	Err error
}

func (e *InvalidArgumentError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("flatten: invalid %s %s: %s", e.Field, describeValue(e.Value), e.Reason)
}

func (e *InvalidArgumentError) Unwrap() []error {
	if e == nil {
		return nil
	}
	if e.Err == nil {
		return []error{ErrInvalidArgument}
	}
	return []error{ErrInvalidArgument, e.Err}
}

func describeValue(value any) string {
	if text, ok := value.(string); ok {
		if text == "" {
			return "<empty>"
		}
		return fmt.Sprintf("%q", text)
	}
	return fmt.Sprintf("%v", value)
}

// FilterError captures filter metadata alongside the originating error.
type FilterError struct {
	Engine string
	Expr   string
	Index  int
	Err    error
}

func (e *FilterError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("flatten: %s filter %s record=%d: %v", e.Engine, describeExpression(e.Expr), e.Index, e.Err)
}

func (e *FilterError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func describeExpression(expr string) string {
	if expr == "" {
		return "expr=<empty>"
	}
	return fmt.Sprintf("expr=%q", expr)
}

func wrapEvaluatorError(engine string, err error) error {
	if err == nil {
		return nil
	}

	var filterErr *FilterError
	if errors.As(err, &filterErr) {
		return err
	}

	if strings.HasPrefix(err.Error(), "flatten:") {
		return err
	}
	return fmt.Errorf("flatten: %s evaluator: %w", engine, err)
}

func wrapFilterError(engine, expr string, index int, err error) error {
	if err == nil {
		return nil
	}

	var filterErr *FilterError
	if errors.As(err, &filterErr) {
		if filterErr.Engine == "" {
			filterErr.Engine = engine
		}
		if filterErr.Expr == "" {
			filterErr.Expr = expr
		}
		return filterErr
	}

	return &FilterError{
		Engine: engine,
		Expr:   expr,
		Index:  index,
		Err:    err,
	}
}
