// Package models defines the core domain entities for Splitfool.
//
// # Entities
//
//   - User: a participant in bill splitting
//   - Bill: one finalized expense event (items, assignments, tax, payer)
//   - Item: a single costed line within a bill
//   - Assignment: the fractional share of one item attributed to one user
//   - Settlement: a recorded balance-reset cutoff
//   - Balance: derived net debt between two users (never persisted)
//
// # Design Principles
//
//  1. **Immutability**: every entity is a value record; mutation is always
//     "replace with a new value". There is no bill edit path — correcting a
//     mistake means creating an offsetting new entry.
//  2. **Exact money**: monetary fields are money.Money and fractions are
//     decimal values. No binary floating point anywhere in the domain.
//  3. **Avoid circular references**: relationships use ID strings, not
//     pointers.
//  4. **Derived data stays derived**: Balance is recomputed from bills and
//     settlements on every query, never stored.
package models
