// Package search coordinates the interactive search session.
//
// A session moves idle → suggesting → navigating: suggestions appear while
// typing (debounced, minimum two characters), and committing a search
// navigates to the results view with the query and active filters encoded in
// a shareable URL.
//
// Every issued suggestion fetch carries a monotonic token. Only the most
// recently issued token may render its result; a slow response for an older
// token is discarded even when it arrives last. That is the whole staleness
// story: logical cancellation, no aborts.
package search
