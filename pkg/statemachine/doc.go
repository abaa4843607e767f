// Package statemachine describes entity lifecycles as a table of allowed
// transitions.
//
// A Table has no current state of its own. Callers keep the state in storage
// and ask the table whether a change is legal:
//
//	const (
//	    Pending = statemachine.State("pending")
//	    Paid    = statemachine.State("paid")
//	)
//
//	lifecycle := statemachine.MustNew(Pending,
//	    statemachine.WithTransition(Pending, Paid),
//	)
//
//	if err := lifecycle.Check(current, Paid); err != nil {
//	    // statemachine.IsNoTransitionError(err) == true
//	}
package statemachine
