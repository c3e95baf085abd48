// Package cli provides the interactive credvault command-line client.
//
// It wires configuration, the gRPC client and a read-eval-print loop. Account
// passwords and master passphrases are read from the terminal without echo
// and wiped once the request carrying them has been sent.
//
// Commands:
//   - register / login / logout
//   - list, add, get <id>, reveal <id>, update <id>, delete <id>
//   - tag <id> <tag>..., untag <id> <tag>..., settags <id> [<tag>...]
//   - export [save]
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
