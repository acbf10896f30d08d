// Package store keeps an optional SQLite history of conversions.
//
// Every compile or decompile run that has a database configured appends one
// row to the conversions table, so a binary map found on disk can be traced
// back to the script that produced it (FindByBinaryHash).
//
// # Ordering
//
// Rows carry a logical seq number assigned inside the insert. All queries
// order by seq, then id, and never by wall time.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Hashes are computed by ir.ScriptHash and ir.BinaryHash using RFC 8785
// canonical JSON and SHA-256 with domain separation.
package store
