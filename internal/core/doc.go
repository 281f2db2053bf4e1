// Package core provides the business logic for slot-band lotto generation.
//
// It has no UI or transport dependencies and is shared by the web server and
// the lottogen CLI.
//
// # Pipeline
//
//  1. [ParseTable] turns raw probability table text into an immutable [Table].
//  2. A [Selector] (see [NewSelector]) filters a slot's column into the set of
//     numbers eligible under a [Policy]: TOP, BOTTOM or RANDOM.
//  3. An [Assembler] draws one number per slot from those sets and tops up any
//     shortfall from 1..45 without replacement.
//  4. [FormatBatch] renders combinations as display [Record] values with a
//     separator after every fifth.
//
// [TableStore] owns the loaded table and its Empty/Loaded/Failed state;
// [Service] ties the store, selector and assembler together for requests.
//
// # Selection Modes
//
// Modes are registered at init time with [RegisterMode]. Two are built in:
//
//   - threshold: TOP is p > 2.0, BOTTOM is 0.2 <= p <= 2.5, RANDOM is p > 0.
//   - rank: TOP is the 5 most probable numbers, BOTTOM the 8 least probable.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError]:
//
//   - FMT001-FMT005: table format errors
//   - TBL001: table not loaded
//   - VAL001-VAL002: request validation
//   - SRC001-SRC002: table source failures
//
// Empty bands and fill shortfalls are never errors. They are reported as a
// [FillStatus] on the combination.
package core
