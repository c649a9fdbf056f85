// Package guard provides a non-reentrant call gate.
//
// A Guard runs one action at a time. An action invoked while another is in
// flight is not run; the guard's reject function is called instead. This stops
// notification loops where a listener triggers the notification that invoked it.
//
//	g := guard.New(func(action func() int, depth int) int { return 0 })
//	notify := func() int { return g.Call(func() int { return broadcast() }) }
package guard
