package codegen

// Register names used by the generated assembly.
const (
	regV  = "$v0" // designated expression result register
	regSP = "$sp"
	regFP = "$fp"
	regRA = "$ra"
	regT0 = "$t0"
	regT1 = "$t1"
	regT2 = "$t2"
	regT3 = "$t3"
)

// argRegs are the four argument-passing registers, $a0 first.
var argRegs = [4]string{"$a0", "$a1", "$a2", "$a3"}
