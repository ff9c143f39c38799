// Package invoicing provides the domain model for composing client invoices.
//
// This package implements the invoice composition bounded context, which is
// responsible for:
//   - Maintaining the set of catalog items selected onto a draft invoice
//   - Computing line amounts and invoice totals from quantities and tax rates
//   - Generating human-readable invoice numbers
//   - Driving the draft lifecycle from empty through submission
//
// Key Aggregates:
//   - Draft: A priced, taxed, numbered invoice document under composition
//
// Value Objects (from shared/valueobject):
//   - Money: Monetary amounts with full decimal precision
//   - TaxRate: Percentage tax rates in [0, 100]
//
// The invoicing domain integrates with:
//   - Catalog provider: Read-only projection of a client's purchasable items
//   - Persistence sink: Accepts the finalized draft on submission
package invoicing
