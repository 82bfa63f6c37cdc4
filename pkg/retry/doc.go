// Package retry retries transient failures with backoff. The release client
// uses it for feed lookups.
//
//	version, err := retry.DoWithResult(ctx, func() (string, error) {
//		return client.Latest(ctx, pkg)
//	}, retry.DefaultConfig())
//
// Typed errors from autoscroll/pkg/errors decide retryability: network, rate
// limit and server errors are retried, parsing and not-found errors are not.
// With Config.ByErrorType set, rate limits wait longer than network blips.
package retry
