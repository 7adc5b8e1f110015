// Package kassabok provides the functions and types to keep a household's
// books in plain text and to reconcile them against the bank's csv exports.
// It is designed to be local-first and auditable: every file in the data
// directory stays human-readable and under the user's control.
//
// The core functionalities include:
//   - Journal Management: Parsing and writing monthly ledger files in a
//     terse double-entry plaintext grammar, with one canonical form.
//   - Account Directory: A declarative configuration of accounts, bank
//     account numbers, payee match rules and csv heading mappings.
//   - CSV Ingestion: Reading bank exports as-is, stamping every row with a
//     permanent identity tag so that rows can be referenced forever.
//   - Reconciliation: A stateless engine that classifies every declared
//     entry and imported row as connected, auto-matched, unconnected or
//     inferred.
//
// This package serves as the foundational logic for the `kbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package kassabok
