// Package domain holds the core types of the USSD dialog engine:
// sessions, request/response shapes, lifecycle events and sentinel errors.
//
// It has no dependencies on adapters or transport; every other package
// imports it, never the reverse.
package domain
