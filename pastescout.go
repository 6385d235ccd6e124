// Package pastescout extracts structured records from pages a researcher
// has copy-pasted out of marketplace-analytics sites: a listing page
// (HTML), a product-analytics page (loosely tabular text) and a
// keyword-research page (repeating-record text).
//
// This package contains domain types, interfaces and the text engine
// shared by every source (line normalization, boundary detection, label
// scanning, record decoding and best-record selection), following Ben
// Johnson's Standard Package Layout. Source-specific parsers live in
// subdirectories named after their primary dependency or source
// (e.g., goquery/, everbee/, erank/).
package pastescout
