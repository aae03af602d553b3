// Package core provides the schedule model for the construction portal.
//
// This package contains all domain logic independent of any UI or transport
// layer. The web server, the CLI and tests use it without modification.
//
// # Architecture
//
// The package is organized around a few small pieces:
//
//   - Parser: [Parse] turns the comma-delimited schedule document into a
//     [ParseResult] of headers, department rows and construction notes.
//   - Classifier: [Classify] maps a phase cell to a [CellStatus], which in
//     turn provides its display label and style token.
//   - Views: [GroupByCategory], [FilterRows] and [BuildTimeline] derive the
//     department picker and per-department timeline from a parse result.
//   - Service: [Service] holds the current snapshot for the session and
//     reloads it from a [Source]; [Watcher] reloads on file change.
//
// # Document Format
//
// The first non-blank line is the header line. Its first two cells label the
// category and subcategory columns and are dropped; the remaining non-blank
// cells name the phases:
//
//	,,Fáze 0,Fáze 1,Fáze 2
//	Onkologie,Ambulance,Bez omezení,Výstavba,"Hluk, vibrace"
//	,,,"Uzavření vjezdu ""B""",
//
// A body line without category and subcategory carries construction notes
// that apply to every department in the given phase.
//
// # Error Handling
//
// Parsing and classification never fail. Malformed lines degrade to empty
// cells or are dropped. Document loading and lookups return wrapped errors
// that [MapError] translates to user-friendly messages with support codes:
//
//   - DOC001-DOC004: Document errors (size, encoding, missing file)
//   - SCH001-SCH003: Schedule lookups and reloads (department, phase, reload)
//   - REQ001-REQ003: Request errors (bad parameters, cancellation, timeout)
package core
