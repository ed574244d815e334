package tracing

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecoverToError recovers from a panic, reports it to sentry, the log and the
// current span, and stores it in *errp so the caller returns it. Must be
// deferred directly. Does nothing when there is no panic.
func RecoverToError(ctx context.Context, loc string, errp *error) {
	r := recover()
	if r == nil {
		return
	}

	err := HandlePanic(ctx, loc, r, string(debug.Stack()))
	if errp != nil {
		*errp = err
	}
}

// HandlePanic reports a recovered panic value and converts it to an error
func HandlePanic(ctx context.Context, loc string, r any, stack string) error {
	err := fmt.Errorf("unhandled panic in %v: %v", loc, r)

	if hub := sentry.CurrentHub(); hub != nil {
		hub.Recover(r)
	}

	fields := log.Fields{"ovm.panic.loc": loc, "ovm.panic.stack": stack}
	if ctx == nil {
		log.WithFields(fields).Error(err.Error())
		return err
	}

	log.WithContext(ctx).WithFields(fields).Error(err.Error())
	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		attribute.String("ovm.panic.loc", loc),
		attribute.String("ovm.panic.stack", stack),
	)
	span.SetStatus(codes.Error, err.Error())

	return err
}
