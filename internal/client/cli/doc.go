// Package cli provides the interactive Kambaz command-line client.
//
// It wires configuration, the session database, the REST clients and an
// interactive REPL. On start the stored session cookie is used to restore the
// signed-in user; after that the user opens one screen at a time (users,
// courses, modules, people, assignments, profile, lab) and works on it with
// list, filter, select, add, edit and delete commands.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
