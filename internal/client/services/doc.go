// Package services contains the screens of the Kambaz client.
//
// A screen owns the collections it displays. It is built when the user
// enters it, loads its data once, applies user mutations through its
// collections and is closed when the user leaves. Nothing is shared between
// screens except the session and the server.
package services
