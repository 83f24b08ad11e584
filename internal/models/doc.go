// Package models defines the core domain records for groupledger.
//
// # Records
//
//   - Group: the aggregate root; owns members, expenses, settlements and budgets
//   - Member: a participant inside one group, identified by ID
//   - Expense: a recorded cost with its payers and its split shares
//   - Settlement: a recorded payment between two members
//   - Budget: a spending target for a group, optionally per category
//   - User: the local user profile kept next to the groups
//
// # Design Principles
//
// 1. **Plain data**: records carry no behavior beyond lookups and encoding.
// Rules live in the calculator and ledger packages.
// 2. **Derived values are never stored**: balances and settlement plans are
// recomputed from the expense and settlement history on every query.
// 3. **IDs, not pointers**: expenses and settlements reference members by ID.
// 4. **Tagged split details**: a SplitShare carries only the detail that its
// split strategy produced (see ShareDetail).
package models
