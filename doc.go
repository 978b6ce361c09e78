// Package taxlots implements a tax-lot accounting engine.
//
// The engine tracks acquisition lots of a security, allocates disposals
// against open lots under several selection methods (FIFO, LIFO, HIFO,
// LOFO, or a caller-supplied specific order), detects wash sales inside a
// 61-day window and redistributes the disallowed loss onto replacement
// lots, classifies holding periods, values unrealized positions, and
// derives loss-harvesting and long-term-hold recommendations.
//
// Every public operation is synchronous and purely computational: it takes
// an immutable snapshot of lots and a transaction, and returns a new
// snapshot plus derived records. The engine performs no I/O; persistence of
// snapshots belongs to the caller (see EncodeLots/DecodeLots for the JSONL
// form used by the bundled CLI). Callers must serialize transaction
// application per portfolio, in transaction-date order, to keep disposal
// checks and wash-sale window scans consistent.
//
// This package serves as the foundational logic for the `taxlot`
// command-line tool.
package taxlots
