// SPDX-License-Identifier: MIT

// Package tensor provides the index-array primitive the CSR engine is built on.
//
// What & Why:
//
//	An Array is a lightweight view handle (buffer, offset, length) over a shared
//	backing buffer. Buffers carry a stable identity, a device placement and a
//	pinned flag. Views produced by Slice share the buffer; Clone and CopyTo
//	always allocate a fresh one. This keeps aliasing explicit: two arrays share
//	storage iff SharesStorage reports so, and mutation paths can ask Exclusive.
//
// Index width:
//
//	Values are held as int64 regardless of DType; the DType tag restricts the
//	representable range (Int32 or Int64) and drives the on-disk byte width.
//
// Devices:
//
//	Host memory is the default. Accelerator placement is an identity tag: the
//	bytes still live in Go memory, but every device-sensitive rule (pinning,
//	same-device checks, copy-on-transfer) is enforced exactly as for real
//	device memory.
//
// Concurrency:
//
//	Arrays are safe for concurrent reads. Pin/Unpin and writes through Mutable
//	must not race with readers of any view sharing the same buffer.
package tensor
