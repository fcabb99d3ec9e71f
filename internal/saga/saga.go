package saga

import (
	"context"
	"fmt"
	"strings"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

// Step is one forward write against the entity store paired with the action
// that undoes it. Compensate may be nil for steps that need no undo (typically
// the last step of a sequence).
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// CompensationFailure records a compensation that itself failed during unwind.
// It never aborts the remaining unwind; it is reported to the caller instead.
type CompensationFailure struct {
	Step string
	Err  error
}

// ExecutionError is returned when a step fails mid-sequence. The steps before
// it have been compensated in strict reverse order; Unwound reports whether
// every compensation succeeded, i.e. whether the store was left with no net
// change.
type ExecutionError struct {
	Op           string
	Step         string
	Cause        error
	Compensation []CompensationFailure
}

func (e *ExecutionError) Error() string {
	if e == nil {
		return ""
	}
	msg := fmt.Sprintf("%s: step %q failed: %v", e.Op, e.Step, e.Cause)
	if len(e.Compensation) > 0 {
		names := make([]string, 0, len(e.Compensation))
		for _, cf := range e.Compensation {
			names = append(names, cf.Step)
		}
		msg += fmt.Sprintf(" (compensation failed for: %s)", strings.Join(names, ", "))
	}
	return msg
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// Unwound reports whether every compensation succeeded, leaving the store
// indistinguishable from a no-op.
func (e *ExecutionError) Unwound() bool {
	return e != nil && len(e.Compensation) == 0
}

// Executor runs compensated step sequences against a store that offers no
// cross-object transactions. Execution is strictly sequential: forward steps
// in order, and on failure the already-committed steps are compensated LIFO.
type Executor struct {
	log *logger.Logger
}

func NewExecutor(baseLog *logger.Logger) *Executor {
	return &Executor{log: baseLog.With("component", "SagaExecutor")}
}

// Execute runs steps in order. If step i fails, compensations for steps
// i-1..0 run in reverse order; a failing compensation is recorded and the
// unwind continues. If step 0 fails nothing is compensated because nothing
// was persisted. Cancellation of ctx between steps surfaces as a step failure
// from the store call, never as an implicit rollback.
func (x *Executor) Execute(ctx context.Context, op string, steps []Step) error {
	for i, step := range steps {
		err := step.Run(ctx)
		if err == nil {
			continue
		}
		x.log.Warn("saga step failed, unwinding",
			"op", op,
			"step", step.Name,
			"committed_steps", i,
			"error", err,
		)
		execErr := &ExecutionError{Op: op, Step: step.Name, Cause: err}
		for j := i - 1; j >= 0; j-- {
			prev := steps[j]
			if prev.Compensate == nil {
				continue
			}
			if cerr := prev.Compensate(ctx); cerr != nil {
				x.log.Error("saga compensation failed",
					"op", op,
					"step", prev.Name,
					"error", cerr,
				)
				execErr.Compensation = append(execErr.Compensation, CompensationFailure{
					Step: prev.Name,
					Err:  cerr,
				})
			}
		}
		return execErr
	}
	return nil
}
