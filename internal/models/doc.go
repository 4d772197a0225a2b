// Package models defines the core domain models for Divvyup.
//
// # Models
//
//   - User: registered account; identified by a UUID string
//   - Category: expense category with display icon and color
//   - Expense: a shared expense paid by one user and split among several
//   - ExpenseSplit: one participant's share of an expense
//   - Settlement: a recorded payment that clears debt between two users
//
// # Design Principles
//
// 1. **Decimal money**: every monetary field is a decimal.Decimal rounded
// to two decimal places; binary floating point never touches stored amounts.
// 2. **Immutable ledger**: expenses and splits are written once at creation
// time. The only mutable split fields are Settled/SettledAt, flipped by the
// settlement flow.
// 3. **Avoid circular references**: relationships use ID strings, not
// pointers.
package models
