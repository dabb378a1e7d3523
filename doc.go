// Package drip simulates dividend reinvestment for a single security.
//
// Given a starting share count, a date range, and historical dividend
// and price data, it computes how shares accumulate as each dividend
// payment is used to buy whole additional shares at the prevailing
// price, with leftover cash carrying forward to the next payment.
//
// The core functionalities include:
//   - Reinvestment Ledger: one immutable row per dividend event,
//     recording cash received, shares purchased, and carried cash.
//   - Cadence Inference: detecting the payment schedule (monthly,
//     quarterly, semiannual, annual) from irregular real-world dates.
//   - Forecasting: past the last observation, replaying the last known
//     dividend amount at a fixed price on the inferred cadence.
//   - Market Data Integration: dividend and close-price series fetched
//     by an external provider behind a small interface.
//
// This package serves as the foundational logic for the `dripsim`
// command-line tool and the HTTP server, ensuring that a simulation is
// deterministic: identical inputs always produce an identical result.
package drip
