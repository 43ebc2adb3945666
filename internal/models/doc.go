// Package models defines the core domain models for Invoicer.
//
// # Models
//
//   - Invoice: the aggregate being authored (parties, dates, line items, tax,
//     discount, currency, status, notes, logo)
//   - LineItem: one billable row, identified by a stable ID
//   - PartyInfo: issuer ("bill from") or recipient ("bill to") details
//   - Preferences: per-user defaults persisted independently of any invoice
//
// # Design Principles
//
//  1. **No stored totals**: subtotal, tax and total are derived by the
//     calculator package on every read
//  2. **Raw numeric input**: quantities, prices, tax and discount keep the text
//     the user typed (NumericText) and are coerced only when computing
//  3. **Value semantics**: operations return modified copies; use Clone before
//     sharing an Invoice whose Items slice may be mutated
//  4. **IDs as strings**: an empty Invoice.ID means the invoice was never saved
package models
