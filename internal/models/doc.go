// Package models defines the canonical data model shared by every CineMate component.
//
// All catalog responses are normalized into [Movie] before any other package
// touches them. Two movies are the same entity iff their numeric IDs are equal;
// titles are display data and never participate in identity.
package models
