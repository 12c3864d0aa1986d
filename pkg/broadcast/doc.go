// Package broadcast fans a value out to registered listeners.
//
// Unlike a channel hub, Registry delivers synchronously and in registration
// order: when Emit returns, every listener has seen the value. This is what
// auth-state changes need, since components must know the new state before
// anything that depends on it renders.
//
// A listener that panics does not stop delivery to the others; the panic is
// recovered and returned from Emit as a *PanicError.
//
//	var auth broadcast.Registry[bool]
//	remove := auth.Add(func(ok bool) { header.SetAuthenticated(ok) })
//	defer remove()
//	if err := auth.Emit(true); err != nil {
//	    log.Error("auth listener failed", logger.Error(err))
//	}
package broadcast
