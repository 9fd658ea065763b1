// Package semantic validates a parsed SELECT statement against the
// simulated catalog: it resolves the table and every column
// reference, checks projection aliases for uniqueness, and checks
// type compatibility in WHERE comparisons.
//
// Unlike the lexer and parser, which stop at the first fault, the
// analyzer accumulates every finding it can in one pass, so a learner
// sees the whole picture at once. Findings come back as an ordered
// diagnostic list together with the symbol table of successful
// resolutions; near-miss spelling suggestions come back separately as
// hints so the diagnostic count stays exact.
package semantic
