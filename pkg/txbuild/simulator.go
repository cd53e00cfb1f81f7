package txbuild

import (
	"fmt"

	"github.com/R3E-Network/NeoRust-sub001/pkg/core/transaction"
	"github.com/R3E-Network/NeoRust-sub001/pkg/smartcontract"
)

// Simulator performs a test invocation of a script against the current chain
// state without persisting anything. It's normally backed by an RPC client,
// but any implementation will do.
type Simulator interface {
	Run(script []byte, signers []transaction.Signer) (*RunResult, error)
}

// RunResult is the outcome of a test invocation.
type RunResult struct {
	// Fault is true when the script ended up in FAULT state.
	Fault bool
	// GasConsumed is the amount of GAS spent on execution.
	GasConsumed int64
	// FaultException is the exception message for faulted scripts.
	FaultException string
	// Stack contains the values left on the evaluation stack.
	Stack []smartcontract.Parameter
}

// FaultError is returned by SystemFee when the simulated script faults.
// A faulting script must not be submitted, the caller has to fix the script
// rather than retry the estimation.
type FaultError struct {
	// Exception is the fault reason as reported by the executing engine.
	Exception string
}

// Error implements the error interface.
func (e *FaultError) Error() string {
	return fmt.Sprintf("script failed in simulation: %s", e.Exception)
}
