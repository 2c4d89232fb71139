/*
Package netsim provides a digital logic network simulator.

Circuits are built out of primitive gates and nested sub-circuits joined by
nets. A Circuit resolves every name in its net list to integer handles once, at
construction, then computes stable signal states by repeated evaluation steps:

	latch, err := netsim.NewCircuit(
		netsim.Parts{
			{Name: "nor0", Device: netsim.Nor()},
			{Name: "nor1", Device: netsim.Nor()},
		},
		append(netsim.In("S, R"), netsim.Out("Q, Q#")...),
		netsim.MustNets(
			"S, nor0.a",
			"R, nor1.b",
			"nor0.out, nor1.a, Q#",
			"nor1.out, nor0.b, Q",
		))
	if err != nil {
		// construction errors are authoring mistakes
	}
	latch.SetExternalInput("S", true)
	latch.SetExternalInput("R", false)
	steps, err := latch.Settle(50)

Each step is a Jacobi relaxation: every sub-device reads its inputs from the
states as they were before the step, then all devices update. A net with no
driver is floating, a net whose drivers disagree is contested; reading either
aborts the step and leaves the circuit untouched.

A Circuit is itself a Device. When nested in another circuit, each outer step
drives the inner circuit to its own fixed point before its boundary outputs are
reported upward.

The simulator is not timing accurate and is single threaded. Circuit values must
not be used concurrently.
*/
package netsim
