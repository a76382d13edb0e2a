// Package cli provides the interactive aceletters command-line client.
//
// It wires configuration, the local session store, the API services and an
// interactive REPL. Typical flow: restore or prompt for credentials, then
// execute user commands against the profile directory and the letter inbox.
//
// Key features:
//   - Signup / Login / Logout with a session that survives restarts
//   - Browse, search and filter the profile directory
//   - Toggle likes with immediate local feedback
//   - Write, read and delete letters
//   - Edit the own profile and upload an avatar
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
