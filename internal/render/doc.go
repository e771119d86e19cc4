// Package render maps canonical movie records plus watchlist membership into
// terminal output: cards, grids, and the rotating banner.
//
// Rendering is idempotent: building the same component twice from the same
// inputs yields structurally identical output, and replacing a grid's
// contents never accumulates stale cards. The association between a rendered
// card and its source record lives in the grid's in-memory registry, never in
// the rendered text.
//
// Components read watchlist state and call mutation methods on the store;
// they never touch the durable layer underneath it.
package render
