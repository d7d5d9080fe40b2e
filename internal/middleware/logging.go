package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// SplitReasonHeader carries the split validation reason code on InvalidArgument errors.
const SplitReasonHeader = "Split-Reason"

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Client errors (any *connect.Error) are logged at Warn together with the
// split reason if one is attached; anything else is logged at Error.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := []any{
				"procedure", req.Spec().Procedure,
				"user_id", GetUserID(ctx), // empty if pre-auth
			}

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			var connectErr *connect.Error
			switch {
			case err == nil:
				logger.InfoContext(ctx, "RPC ok", attrs...)
			case errors.As(err, &connectErr):
				attrs = append(attrs, "code", connectErr.Code(), "error", connectErr.Message())
				if reason := connectErr.Meta().Get(SplitReasonHeader); reason != "" {
					attrs = append(attrs, "split_reason", reason)
				}
				logger.WarnContext(ctx, "RPC error", attrs...)
			default:
				logger.ErrorContext(ctx, "RPC error", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}
