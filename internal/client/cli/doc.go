// Package cli provides the interactive Tempest command-line client.
//
// It wires configuration, local storage, the REST API client, and an
// interactive REPL around a persisted session. Typical flow: restore any
// saved session, greet the user with the site name, and execute commands
// until the user exits.
//
// Key features:
//   - Login / Signup / Logout with persisted sessions
//   - Password recovery via one-time codes
//   - Editing the signed-in user's profile record
//   - An inactivity watchdog that warns, counts down, and signs out
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
