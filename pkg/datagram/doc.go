// Package datagram declares the contract between the satellite session core
// and the datagram subsystem: the transfer-state shape the subsystem reports
// on every change, and the predicates the session uses to decide whether the
// subsystem is quiescent.
//
// This package holds no implementation of the datagram subsystem itself —
// that component is external to the session core and is reached only
// through the Subsystem interface.
package datagram
