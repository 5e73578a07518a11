// Package async provides a minimal Future type for best-effort background work.
//
// Exec runs a function on its own goroutine and hands back a *Future. The
// caller decides how much it cares about the outcome: await it, await it with
// a timeout, poll it, or drop it. Dropping the future is the intended usage
// for fire-and-forget writes — the operation's error is still captured and
// can be logged inside the function itself.
//
//	fut := async.Exec(ctx, func(ctx context.Context) error {
//		return gateway.Save(ctx, record)
//	})
//
//	// Fire-and-forget: ignore fut entirely.
//	// Best-effort teardown: fut.AwaitWithTimeout(2 * time.Second).
//
// Errors:
//   - ErrTimeout: returned when AwaitWithTimeout exceeds its duration
package async
