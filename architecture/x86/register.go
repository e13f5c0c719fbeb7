package x86

import "github.com/keurnel/aus/internal/asm"

// Register and the named register constants are re-exported from the
// architecture-neutral asm package so the rest of this package can refer
// to them without an asm. qualifier on every line, matching the
// teacher's own practice of aliasing a shared catalogue type at each
// architecture package's boundary.
type Register = asm.Register

const (
	AL  = asm.AL
	AH  = asm.AH
	AX  = asm.AX
	EAX = asm.EAX
	BL  = asm.BL
	BH  = asm.BH
	BX  = asm.BX
	EBX = asm.EBX
	CL  = asm.CL
	CH  = asm.CH
	CX  = asm.CX
	ECX = asm.ECX
	DL  = asm.DL
	DH  = asm.DH
	DX  = asm.DX
	EDX = asm.EDX
	SI  = asm.SI
	ESI = asm.ESI
	DI  = asm.DI
	EDI = asm.EDI
	SP  = asm.SP
	ESP = asm.ESP
	BP  = asm.BP
	EBP = asm.EBP
)

func regEncoding(r Register) byte { return asm.RegisterEncoding[r] }
