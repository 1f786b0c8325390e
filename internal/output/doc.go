// Package output delivers MIDI channel messages to named ports.
//
// A Port is anything that accepts a three-byte message: the "log" driver
// prints it, the "memory" driver records it and the "socketio" driver emits
// it to a socket.io bridge in front of a hardware or virtual MIDI device.
// Open resolves port names against the configured outputs and opens them
// concurrently; Metrics wraps ports with prometheus counters.
package output
