/*
Package ussdflow is a USSD dialog engine: it drives a multi-screen menu
conversation with a mobile subscriber over a sequence of stateless HTTP
calls from a USSD gateway.

Each gateway request carries a session id, the subscriber's latest input
and a flag marking new dialogs. The engine reconstructs where the
subscriber is, interprets the keypress (or the selections concatenated
into the dial string, e.g. *920*1802*1*2#), and answers with the next
screen of text plus a continuation flag.

# Architecture

The core is hexagonal. pkg/menu holds the static, startup-validated menu
tree. pkg/engine is the state machine; it only talks to the session
store through pkg/ports, with in-memory and Redis adapters under
pkg/adapters. pkg/session serializes concurrent requests per session id.
The gateway wire contract lives in pkg/adapters/http.

# Usage

	svc := ussdflow.New(
		ussdflow.WithServiceAddress("920", "1802"),
	)
	http.ListenAndServe(":8080", svc.Handler())

Menus can be authored in YAML and loaded with menu.FromFile; deployments
with more than one replica should use the Redis store and locker from
pkg/adapters/redis.
*/
package ussdflow
