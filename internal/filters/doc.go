// Package filters owns the active genre/year/rating selection and the
// session genre catalog.
//
// The selection round-trips losslessly through URL query parameters, which
// is how search state survives navigation and produces shareable deep links.
// Filtering is always a local step over canonical records; nothing here
// reaches the network except the one-time genre catalog load.
package filters
