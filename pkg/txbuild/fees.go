package txbuild

import (
	"errors"
	"fmt"

	"github.com/R3E-Network/NeoRust-sub001/pkg/core/fee"
	"github.com/R3E-Network/NeoRust-sub001/pkg/core/transaction"
	"github.com/R3E-Network/NeoRust-sub001/pkg/wallet"
)

// SystemFee estimates the execution fee for the given script by test-invoking
// it via the configured Simulator. A faulting script yields a *FaultError,
// such a script must not be submitted. The returned value is an exact lower
// bound, the caller may add a safety margin on top.
func (a *Assembler) SystemFee(script []byte, signers []transaction.Signer) (int64, error) {
	if a.Simulator == nil {
		return 0, errors.New("no simulator configured")
	}
	r, err := a.Simulator.Run(script, signers)
	if err != nil {
		return 0, fmt.Errorf("test invocation failed: %w", err)
	}
	if r.Fault {
		return 0, &FaultError{Exception: r.FaultException}
	}
	return r.GasConsumed, nil
}

// NetworkFee estimates the inclusion fee for the transaction signed by the
// given accounts, one per transaction signer in the same order. The estimate
// covers the serialized size (with witnesses yet to be attached counted in)
// and the verification cost of every signer's contract. Deployed contracts
// can't be estimated locally. Like SystemFee it's an exact lower bound
// without any safety margin.
func (a *Assembler) NetworkFee(t *transaction.Transaction, accs ...*wallet.Account) (int64, error) {
	if len(accs) != len(t.Signers) {
		return 0, fmt.Errorf("%d accounts given for %d signers", len(accs), len(t.Signers))
	}
	baseExec := a.BaseExecFee
	if baseExec == 0 {
		baseExec = DefaultBaseExecFee
	}
	feePerByte := a.FeePerByte
	if feePerByte == 0 {
		feePerByte = DefaultFeePerByte
	}

	size := t.Size()
	var netFee int64
	for i, acc := range accs {
		script := acc.GetVerificationScript()
		if len(script) == 0 {
			return 0, fmt.Errorf("signer #%d: can't estimate verification cost without a verification script", i)
		}
		verFee, sizeDelta := fee.Calculate(baseExec, script)
		if sizeDelta == 0 {
			return 0, fmt.Errorf("signer #%d: non-standard verification script", i)
		}
		netFee += verFee
		size += sizeDelta
	}
	netFee += int64(size) * feePerByte
	return netFee, nil
}
