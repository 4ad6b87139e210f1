package ussdflow_test

import (
	"context"
	"fmt"
	"log"

	"github.com/yawmintah/ussdflow"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/menu"
)

// ExampleNew demonstrates using ussdflow purely as a Go library: define a
// menu in Go structs, wire a Service, and drive a dialog without any HTTP
// in between.
func ExampleNew() {
	m, err := menu.New(menu.Definition{
		Start: "amount",
		Screens: []menu.Screen{
			{
				ID:         "amount",
				CaptureKey: "amount",
				Prompt:     "Top up airtime:\n1. GHS 5\n2. GHS 10",
				Options: []menu.Option{
					{Code: "1", Value: "GHS 5", Next: "confirm"},
					{Code: "2", Value: "GHS 10", Next: "confirm"},
				},
			},
			{
				ID:     "confirm",
				Prompt: "Top up {amount}?\n1. Yes\n2. No",
				Options: []menu.Option{
					{Code: "1", Value: "Yes", Outcome: "You topped up {amount}."},
					{Code: "2", Value: "No", Outcome: "Top-up cancelled."},
				},
			},
		},
	})
	if err != nil {
		log.Fatal(err)
	}

	svc := ussdflow.New(
		ussdflow.WithMenu(m),
		ussdflow.WithServiceAddress("555", "10"),
	)

	// The subscriber dials the full string in one go, so the dialog
	// completes without a single continuation round trip.
	resp, err := svc.Engine.Handle(context.Background(), domain.DialogRequest{
		SubscriberID: "example",
		Msisdn:       "0244000000",
		Input:        "*555*10*1*1#",
		NewDialog:    true,
		SessionID:    "example-session",
	})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.Message)
	fmt.Println(resp.Continue)
	// Output:
	// You topped up GHS 5.
	// false
}
