// Package rentroll tracks residential leases, the charges they generate and
// the payments applied to those charges, and computes rolling monthly
// analytics over one or many buildings.
//
// The core is made of:
//   - Charges: payable line items that may contain sub-charges and record the
//     payments made against them. Payments get confirmation numbers from an
//     injected Sequence.
//   - Leases: a lease generates, when signed, one composite charge per
//     calendar month of its term, made of a prorated rent and a service fee.
//   - Buildings, floors and units: the organizational containers. A unit has
//     at most one current resident and a lease history.
//   - Residents: their ledger aggregates the charges of every lease they ever
//     signed.
//   - Reports: average rent per area, vacancy rate and gross rental revenue
//     per month, for a building or merged across buildings weighted by area.
//
// Everything is in memory and synchronous. Persistence lives in the store
// package, rendering in the renderer package and the `rr` command line in cmd.
package rentroll
