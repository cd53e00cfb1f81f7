package fee

import (
	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/R3E-Network/NeoRust-sub001/pkg/smartcontract"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/emit"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/opcode"
)

// ECDSAVerifyPrice is a gas price of a single verification.
const ECDSAVerifyPrice = 1 << 15

// Calculate returns network fee for a transaction with the given verification
// script. The verification cost is counted in GAS fractions assuming the
// specified base execution price, the size is the amount of bytes the witness
// adds to a transaction.
func Calculate(base int64, script []byte) (netFee int64, size int) {
	if smartcontract.IsSignatureContract(script) {
		size += 67 + io.GetVarSize(script)
		netFee += Opcode(base, opcode.PUSHDATA1, opcode.PUSHDATA1, opcode.SYSCALL) + base*ECDSAVerifyPrice
	} else if m, pubs, ok := smartcontract.ParseMultiSigContract(script); ok {
		n := len(pubs)
		sizeInv := 66 * m
		size += io.GetVarSize(sizeInv) + sizeInv + io.GetVarSize(script)
		netFee += calculateMultisig(base, m) + calculateMultisig(base, n)
		netFee += Opcode(base, opcode.SYSCALL) + base*ECDSAVerifyPrice*int64(n)
	}
	// We can't really do anything about custom contracts since they can be
	// arbitrarily complex.
	return
}

func calculateMultisig(base int64, n int) int64 {
	result := Opcode(base, opcode.PUSHDATA1) * int64(n)
	bw := io.NewBufBinWriter()
	emit.Int(bw.BinWriter, int64(n))
	// it's a hack because prices of small PUSH* opcodes are equal
	result += Opcode(base, opcode.Opcode(bw.Bytes()[0]))
	return result
}
