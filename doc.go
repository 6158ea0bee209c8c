// Package statement converts the text of a quarterly brokerage statement into a
// ledger: a bank statement for the cash reserve account and an investment statement
// for every investing goal, with reconciled transactions and end of period positions.
//
// The conversion is a pipeline of pure stages driven by a Config:
//   - Segment splits the statement lines into account sections.
//   - The sections read their tables (holdings, dividends, activity, cash ledgers),
//     as described by the Layout of the statement revision.
//   - Assemble reconciles the activity of each goal with the cash ledgers and builds
//     the Statement.
//
// Parse runs the whole pipeline. Amounts are kept as printed, and transaction
// identifiers are derived from their content, so that importing the same statement
// twice yields the same identifiers.
//
// This package serves as the foundation of the stmt command line tool, and of the
// ofx package that exports a Statement.
package statement
