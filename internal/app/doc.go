// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the session lifecycle: load the session,
// explore the chord graph, choose a progression, route sounds onto output
// ports and play it. It is decoupled from any specific entrypoint like a CLI.
package app
