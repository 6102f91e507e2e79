// Package op defines the EVM opcodes understood by the assembler and the
// disassembler.
package op

import (
	"fmt"
	"strings"
)

// Code is a single-byte EVM opcode.
type Code byte

const (
	// Arithmetic
	Stop       Code = 0x00
	Add        Code = 0x01
	Mul        Code = 0x02
	Sub        Code = 0x03
	Div        Code = 0x04
	SDiv       Code = 0x05
	Mod        Code = 0x06
	SMod       Code = 0x07
	AddMod     Code = 0x08
	MulMod     Code = 0x09
	Exp        Code = 0x0a
	SignExtend Code = 0x0b

	// Comparison and bitwise logic
	Lt     Code = 0x10
	Gt     Code = 0x11
	SLt    Code = 0x12
	SGt    Code = 0x13
	Eq     Code = 0x14
	IsZero Code = 0x15
	And    Code = 0x16
	Or     Code = 0x17
	Xor    Code = 0x18
	Not    Code = 0x19
	Byte   Code = 0x1a
	Shl    Code = 0x1b
	Shr    Code = 0x1c
	Sar    Code = 0x1d

	Keccak256 Code = 0x20

	// Environment
	Address        Code = 0x30
	Balance        Code = 0x31
	Origin         Code = 0x32
	Caller         Code = 0x33
	CallValue      Code = 0x34
	CallDataLoad   Code = 0x35
	CallDataSize   Code = 0x36
	CallDataCopy   Code = 0x37
	CodeSize       Code = 0x38
	CodeCopy       Code = 0x39
	GasPrice       Code = 0x3a
	ExtCodeSize    Code = 0x3b
	ExtCodeCopy    Code = 0x3c
	ReturnDataSize Code = 0x3d
	ReturnDataCopy Code = 0x3e
	ExtCodeHash    Code = 0x3f

	// Block information
	BlockHash   Code = 0x40
	Coinbase    Code = 0x41
	Timestamp   Code = 0x42
	Number      Code = 0x43
	PrevRandao  Code = 0x44
	GasLimit    Code = 0x45
	ChainID     Code = 0x46
	SelfBalance Code = 0x47
	BaseFee     Code = 0x48
	BlobHash    Code = 0x49
	BlobBaseFee Code = 0x4a

	// Stack, memory, storage and flow
	Pop      Code = 0x50
	MLoad    Code = 0x51
	MStore   Code = 0x52
	MStore8  Code = 0x53
	SLoad    Code = 0x54
	SStore   Code = 0x55
	Jump     Code = 0x56
	JumpI    Code = 0x57
	PC       Code = 0x58
	MSize    Code = 0x59
	Gas      Code = 0x5a
	JumpDest Code = 0x5b
	TLoad    Code = 0x5c
	TStore   Code = 0x5d
	MCopy    Code = 0x5e

	// Push, dup, swap and log ranges. Only the ends of each range are named;
	// use Push, Dup, Swap and Log to build the rest.
	Push0  Code = 0x5f
	Push1  Code = 0x60
	Push32 Code = 0x7f
	Dup1   Code = 0x80
	Dup16  Code = 0x8f
	Swap1  Code = 0x90
	Swap16 Code = 0x9f
	Log0   Code = 0xa0
	Log4   Code = 0xa4

	// System
	Create       Code = 0xf0
	Call         Code = 0xf1
	CallCode     Code = 0xf2
	Return       Code = 0xf3
	DelegateCall Code = 0xf4
	Create2      Code = 0xf5
	StaticCall   Code = 0xfa
	Revert       Code = 0xfd
	Invalid      Code = 0xfe
	SelfDestruct Code = 0xff
)

// PushBase is the opcode of a push with a one byte immediate. The opcode for
// an n byte immediate is PushBase + n - 1.
const PushBase = Push1

// MaxPushSize is the widest immediate a single push can carry.
const MaxPushSize = 32

// Push returns the push opcode carrying an immediate of n bytes. Push(0) is
// PUSH0. It panics if n is outside 0..32.
func Push(n int) Code {
	if n < 0 || n > MaxPushSize {
		panic(fmt.Sprintf("op: invalid push size %d", n))
	}
	return PushBase + Code(n) - 1
}

// Dup returns DUPn for n in 1..16.
func Dup(n int) Code {
	if n < 1 || n > 16 {
		panic(fmt.Sprintf("op: invalid dup depth %d", n))
	}
	return Dup1 + Code(n-1)
}

// Swap returns SWAPn for n in 1..16.
func Swap(n int) Code {
	if n < 1 || n > 16 {
		panic(fmt.Sprintf("op: invalid swap depth %d", n))
	}
	return Swap1 + Code(n-1)
}

// Log returns LOGn for n in 0..4.
func Log(n int) Code {
	if n < 0 || n > 4 {
		panic(fmt.Sprintf("op: invalid log topic count %d", n))
	}
	return Log0 + Code(n)
}

// IsPush reports whether the opcode is PUSH0..PUSH32.
func (c Code) IsPush() bool {
	return c >= Push0 && c <= Push32
}

// Immediate returns the number of immediate bytes following the opcode.
func (c Code) Immediate() int {
	if c.IsPush() {
		return int(c - Push0)
	}
	return 0
}

// String returns the mnemonic, or a hex placeholder for undefined opcodes.
func (c Code) String() string {
	if info := infos[c]; info.Name != "" {
		return info.Name
	}
	return fmt.Sprintf("opcode 0x%02x", byte(c))
}

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// Immediate is the number of bytes following the opcode in the stream.
	Immediate int
}

// Defined reports whether the info describes a known opcode.
func (i Info) Defined() bool {
	return i.Name != ""
}

var (
	infos   [256]Info
	byName  = map[string]Code{}
	aliases = map[string]Code{
		"SHA3":       Keccak256,
		"DIFFICULTY": PrevRandao,
		"SUICIDE":    SelfDestruct,
	}
)

func init() {
	type opInfo struct {
		op   Code
		name string
	}
	ops := []opInfo{
		{Stop, "STOP"},
		{Add, "ADD"},
		{Mul, "MUL"},
		{Sub, "SUB"},
		{Div, "DIV"},
		{SDiv, "SDIV"},
		{Mod, "MOD"},
		{SMod, "SMOD"},
		{AddMod, "ADDMOD"},
		{MulMod, "MULMOD"},
		{Exp, "EXP"},
		{SignExtend, "SIGNEXTEND"},
		{Lt, "LT"},
		{Gt, "GT"},
		{SLt, "SLT"},
		{SGt, "SGT"},
		{Eq, "EQ"},
		{IsZero, "ISZERO"},
		{And, "AND"},
		{Or, "OR"},
		{Xor, "XOR"},
		{Not, "NOT"},
		{Byte, "BYTE"},
		{Shl, "SHL"},
		{Shr, "SHR"},
		{Sar, "SAR"},
		{Keccak256, "KECCAK256"},
		{Address, "ADDRESS"},
		{Balance, "BALANCE"},
		{Origin, "ORIGIN"},
		{Caller, "CALLER"},
		{CallValue, "CALLVALUE"},
		{CallDataLoad, "CALLDATALOAD"},
		{CallDataSize, "CALLDATASIZE"},
		{CallDataCopy, "CALLDATACOPY"},
		{CodeSize, "CODESIZE"},
		{CodeCopy, "CODECOPY"},
		{GasPrice, "GASPRICE"},
		{ExtCodeSize, "EXTCODESIZE"},
		{ExtCodeCopy, "EXTCODECOPY"},
		{ReturnDataSize, "RETURNDATASIZE"},
		{ReturnDataCopy, "RETURNDATACOPY"},
		{ExtCodeHash, "EXTCODEHASH"},
		{BlockHash, "BLOCKHASH"},
		{Coinbase, "COINBASE"},
		{Timestamp, "TIMESTAMP"},
		{Number, "NUMBER"},
		{PrevRandao, "PREVRANDAO"},
		{GasLimit, "GASLIMIT"},
		{ChainID, "CHAINID"},
		{SelfBalance, "SELFBALANCE"},
		{BaseFee, "BASEFEE"},
		{BlobHash, "BLOBHASH"},
		{BlobBaseFee, "BLOBBASEFEE"},
		{Pop, "POP"},
		{MLoad, "MLOAD"},
		{MStore, "MSTORE"},
		{MStore8, "MSTORE8"},
		{SLoad, "SLOAD"},
		{SStore, "SSTORE"},
		{Jump, "JUMP"},
		{JumpI, "JUMPI"},
		{PC, "PC"},
		{MSize, "MSIZE"},
		{Gas, "GAS"},
		{JumpDest, "JUMPDEST"},
		{TLoad, "TLOAD"},
		{TStore, "TSTORE"},
		{MCopy, "MCOPY"},
		{Create, "CREATE"},
		{Call, "CALL"},
		{CallCode, "CALLCODE"},
		{Return, "RETURN"},
		{DelegateCall, "DELEGATECALL"},
		{Create2, "CREATE2"},
		{StaticCall, "STATICCALL"},
		{Revert, "REVERT"},
		{Invalid, "INVALID"},
		{SelfDestruct, "SELFDESTRUCT"},
	}
	for n := 0; n <= MaxPushSize; n++ {
		ops = append(ops, opInfo{Push(n), fmt.Sprintf("PUSH%d", n)})
	}
	for n := 1; n <= 16; n++ {
		ops = append(ops, opInfo{Dup(n), fmt.Sprintf("DUP%d", n)})
		ops = append(ops, opInfo{Swap(n), fmt.Sprintf("SWAP%d", n)})
	}
	for n := 0; n <= 4; n++ {
		ops = append(ops, opInfo{Log(n), fmt.Sprintf("LOG%d", n)})
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:      o.op,
			Name:      o.name,
			Immediate: o.op.Immediate(),
		}
		byName[o.name] = o.op
	}
	for name, code := range aliases {
		byName[name] = code
	}
}

// GetInfo returns information about the given opcode. The zero Info is
// returned for undefined opcodes.
func GetInfo(op Code) Info {
	return infos[op]
}

// Lookup resolves a mnemonic to its opcode. Matching is case-insensitive and
// accepts the legacy aliases SHA3, DIFFICULTY and SUICIDE.
func Lookup(name string) (Code, bool) {
	code, ok := byName[strings.ToUpper(name)]
	return code, ok
}

// Infos returns every defined opcode ordered by byte value.
func Infos() []Info {
	var result []Info
	for _, info := range infos {
		if info.Defined() {
			result = append(result, info)
		}
	}
	return result
}
