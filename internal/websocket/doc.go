// Package websocket serves the live selection socket at /ws.
//
// Each connection gets a Session with its own read and write pumps. The page
// sends
//
//	{"type":"selection","selection":{"genres":["Drama"],"ratings":null}}
//
// and receives {"type":"dashboard","dashboard":{...}} rendered from the same
// immutable base table as the HTTP API. Invalid messages are answered with
// {"type":"error","error":<problem details>} and the session stays open.
// Sessions share no state; the Registry only counts them.
package websocket
