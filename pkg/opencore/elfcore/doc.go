// Package elfcore lays out and serializes an ET_CORE ELF file: the ELF
// header, the program-header table (one PT_NOTE plus N PT_LOAD entries),
// the note segment body, and the PT_LOAD payload stream.
//
// Every struct here is encoded by hand with encoding/binary rather than
// native Go struct layout, because the byte layout must match the Linux
// kernel's core-dump ABI exactly — relying on compiler-chosen padding
// would silently produce a file no debugger can read.
//
// elfcore knows nothing about ptrace, /proc, or process trees; it is
// handed already-captured register and auxiliary-vector bytes and a
// sequence of program segments, and turns them into bytes on disk. The
// orchestrator in pkg/opencore and the per-architecture backends in
// pkg/opencore/arch are the only callers.
package elfcore
