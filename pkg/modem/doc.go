// Package modem declares the contract between the satellite session core and
// the modem interface: an opaque asynchronous capability that toggles
// cellular scanning, listening mode, and signal reporting on the radio.
//
// The session core only ever calls through the Interface below; this package
// carries no radio driver code. A satellite-enablement callback (used only
// by the screen-off inactivity handler) and the ordered State enum reported
// by the radio are declared alongside it.
package modem
