// Package ui implements the interactive terminal interface using bubbletea's
// Elm architecture.
//
// One [Model] hosts five views mirroring the application's pages:
//  1. [HomeView] : trending banner carousel + popular grid
//  2. [TrendingView] : paginated day/week trending grid
//  3. [SearchView] : live suggestions, committed results, filter form
//  4. [DetailView] : one movie's detail, cast, trailer, similar titles
//  5. [WatchlistView] : the saved list
//
// All state flows one way: views read the watchlist and filter stores and
// invoke their mutation methods, never the persistence underneath. External
// watchlist changes (another running process) arrive over a channel and
// coalesce into one refresh per update cycle.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, w, q) with
// contextual help via charmbracelet/bubbles/help.
package ui
