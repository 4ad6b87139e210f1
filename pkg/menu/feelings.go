package menu

// Feelings returns the built-in reference menu: two screens asking how
// the subscriber feels and why, ending with a summary of both answers.
func Feelings() *Menu {
	m, err := New(Definition{
		Greeting: "Welcome to {subscriber}'s Service.",
		Start:    "feeling",
		Screens: []Screen{
			{
				ID:         "feeling",
				CaptureKey: "feeling",
				Prompt:     "How are you feeling?\n1. Fine\n2. Frisky\n3. Not well",
				Options: []Option{
					{Code: "1", Value: "Fine", Next: "reason"},
					{Code: "2", Value: "Frisky", Next: "reason"},
					{Code: "3", Value: "Not well", Next: "reason"},
				},
			},
			{
				ID:         "reason",
				CaptureKey: "reason",
				Prompt:     "Why are you feeling {feeling|lower}?\n1. Money\n2. Relationships\n3. Health",
				Options: []Option{
					{Code: "1", Value: "Money", Outcome: feelingsOutcome},
					{Code: "2", Value: "Relationships", Outcome: feelingsOutcome},
					{Code: "3", Value: "Health", Outcome: feelingsOutcome},
				},
			},
		},
	})
	if err != nil {
		// The built-in menu is covered by tests; failing here means the
		// definition above was edited into an invalid shape.
		panic(err)
	}
	return m
}

const feelingsOutcome = "You are feeling {feeling|lower} because of {reason|lower}."
