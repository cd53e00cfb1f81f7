package smartcontract

import (
	"errors"

	"github.com/R3E-Network/NeoRust-sub001/pkg/io"
	"github.com/R3E-Network/NeoRust-sub001/pkg/smartcontract/callflag"
	"github.com/R3E-Network/NeoRust-sub001/pkg/util"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/emit"
	"github.com/R3E-Network/NeoRust-sub001/pkg/vm/opcode"
)

// ErrBuilderClosed is returned when emitting into a Builder that has already
// produced its script. Reset reopens the Builder.
var ErrBuilderClosed = errors.New("script builder is closed")

// Builder is used to create arbitrary scripts from the set of methods it
// provides. Each method emits some set of opcodes performing an action and
// (in most cases) returning a result. These chunks of code can be composed
// together to perform several actions in the same script (and therefore in
// the same transaction), but the end result (in terms of state changes and/or
// resulting items) of the script totally depends on what it contains and
// that's the responsibility of the Builder user. Builder is mostly used to
// create transaction scripts (also known as "entry scripts"), so the set of
// methods it exposes is tailored to this model of use and any calls emitted
// don't limit flags in any way (always use callflag.All).
type Builder struct {
	bw     *io.BufBinWriter
	closed bool
}

// NewBuilder creates a new Builder instance.
func NewBuilder() *Builder {
	return &Builder{bw: io.NewBufBinWriter()}
}

// InvokeMethod is the most generic contract method invoker, the code it
// produces packs all of the arguments given into an array and calls some
// method of the contract. The correctness of this invocation (number and
// type of parameters) is out of scope of this method, as well as return
// value, if the contract's method returns something this value just remains
// on the execution stack.
func (b *Builder) InvokeMethod(contract util.Uint160, method string, params ...interface{}) {
	if b.guard() {
		return
	}
	emit.AppCall(b.bw.BinWriter, contract, method, callflag.All, params...)
}

// InvokeWithFlags works like InvokeMethod but allows to restrict the flags
// of the emitted call.
func (b *Builder) InvokeWithFlags(contract util.Uint160, flags callflag.CallFlag, method string, params ...interface{}) {
	if b.guard() {
		return
	}
	emit.AppCall(b.bw.BinWriter, contract, method, flags, params...)
}

// Assert emits an ASSERT opcode that expects a Boolean value to be on the
// stack, checks if it's true and aborts the transaction if it's not.
func (b *Builder) Assert() {
	if b.guard() {
		return
	}
	emit.Opcodes(b.bw.BinWriter, opcode.ASSERT)
}

// InvokeWithAssert emits an invocation of the method (see InvokeMethod) with
// an ASSERT after the invocation. The presumption is that the method called
// returns a Boolean value signalling the success or failure of the operation.
// This pattern is pretty common, NEP-11 or NEP-17 'transfer' methods do
// exactly that as well as NEO's 'vote'. The ASSERT then allows to simplify
// transaction status checking, if the action is successful then the
// transaction is successful as well, if it went wrong then the whole
// transaction fails (ends with vmstate.FAULT).
func (b *Builder) InvokeWithAssert(contract util.Uint160, method string, params ...interface{}) {
	b.InvokeMethod(contract, method, params...)
	b.Assert()
}

// Instruction emits a raw instruction with the given operand.
func (b *Builder) Instruction(op opcode.Opcode, operand []byte) {
	if b.guard() {
		return
	}
	emit.Instruction(b.bw.BinWriter, op, operand)
}

// Opcodes emits a sequence of operand-less instructions.
func (b *Builder) Opcodes(ops ...opcode.Opcode) {
	if b.guard() {
		return
	}
	emit.Opcodes(b.bw.BinWriter, ops...)
}

// Len returns the current length of the emitted script.
func (b *Builder) Len() int {
	return b.bw.Len()
}

func (b *Builder) guard() bool {
	if b.closed && b.bw.Err == nil {
		b.bw.Err = ErrBuilderClosed
	}
	return b.bw.Err != nil
}

// Script returns the current script. The Builder can't be used after
// invoking this method unless it's Reset.
func (b *Builder) Script() ([]byte, error) {
	if b.closed {
		return nil, ErrBuilderClosed
	}
	if err := b.bw.Err; err != nil {
		return nil, err
	}
	b.closed = true
	return b.bw.Bytes(), nil
}

// Reset resets the Builder, allowing to reuse the same script buffer (but
// the previous script will be overwritten there).
func (b *Builder) Reset() {
	b.bw.Reset()
	b.closed = false
}
