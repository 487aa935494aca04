// Package collection keeps a screen's local copy of a server-owned list in
// step with the server.
//
// A Collection owns the cached items, an optional selection and a version
// counter. Load replaces the items wholesale; Create appends the created
// record and then reloads; Update replaces by id; Delete asks for
// confirmation and removes by id. Display filters (see Filter and Apply) are
// pure projections of the cached items and never reach the server.
//
// Requests are not serialized. Each one captures the version when it starts
// and its result is applied only if the version is unchanged when it
// returns; otherwise the result is dropped and ErrStaleUpdate is returned.
package collection
