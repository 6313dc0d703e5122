// Package session stores the latest edited bitmap posted by the browser
// editor for each node.
//
// A Store maps a node id to one payload, the data URL of the edited canvas.
// Each save overwrites the previous payload; there is no history. The node
// reads the payload once per execution and never deletes it.
//
// Two backends are provided:
//   - MemoryStore keeps payloads for the lifetime of the process.
//   - RedisStore shares payloads between processes and can expire them.
//
// Stores are passed explicitly to the components that need them, so the
// editor node and the HTTP handler can be tested against a fresh MemoryStore.
package session
