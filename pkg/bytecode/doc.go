// Package bytecode models the parts of a compiled Move module that the
// tree views need: the handle tables, the signature pool, the identifier
// pool and the function definitions.
//
// The model mirrors the binary format's indirection: a function definition
// points at a function handle, which points at identifiers and signatures,
// and a datatype token points at a datatype handle, which points at the
// module handle that owns it. Nothing here decodes raw bytecode; a
// [Package] is produced by an external compiler and handed over as a
// snapshot (see package compile).
//
// # Tokens
//
// [Token] is a tagged value. Primitive kinds carry no payload, container
// kinds carry Inner, TypeParameter carries Index, and the datatype kinds
// carry Handle (plus TypeArgs for instantiations):
//
//	tok := bytecode.Vector(bytecode.Ref(bytecode.Datatype(h)))
//
// # Contract
//
// Accessors such as [CompiledModule.DatatypeHandleAt] panic on an index
// that is out of range. An unresolvable handle means the producer handed
// over a malformed module, which is a programming error rather than a
// recoverable condition. Call [CompiledModule.Validate] at the boundary
// where untrusted snapshots enter the program.
package bytecode
