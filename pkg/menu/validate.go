package menu

import (
	"fmt"
	"strings"

	"github.com/yawmintah/ussdflow/pkg/domain"
)

// validate checks the definition for structural soundness: the start
// screen exists, every transition target exists, no option code repeats
// within a screen, every screen is reachable from the start, and the
// graph is acyclic. Any finding is a startup error, never a runtime one.
func validate(def Definition) error {
	if def.Start == "" {
		return fmt.Errorf("menu: start screen not set")
	}
	if len(def.Screens) == 0 {
		return fmt.Errorf("menu: no screens defined")
	}

	index := make(map[domain.ScreenID]*Screen, len(def.Screens))
	var errs []string

	for i := range def.Screens {
		s := &def.Screens[i]
		if s.ID == "" {
			errs = append(errs, fmt.Sprintf("screen %d has no id", i))
			continue
		}
		if _, dup := index[s.ID]; dup {
			errs = append(errs, fmt.Sprintf("screen %q defined twice", s.ID))
			continue
		}
		index[s.ID] = s
	}

	if _, ok := index[def.Start]; !ok {
		errs = append(errs, fmt.Sprintf("start screen %q not defined", def.Start))
	}

	for id, s := range index {
		if len(s.Options) == 0 {
			errs = append(errs, fmt.Sprintf("screen %q has no options", id))
		}
		codes := make(map[string]bool, len(s.Options))
		for i := range s.Options {
			o := &s.Options[i]
			if o.Code == "" {
				errs = append(errs, fmt.Sprintf("screen %q: option %d has no code", id, i))
			}
			if codes[o.Code] {
				errs = append(errs, fmt.Sprintf("screen %q: option code %q duplicated", id, o.Code))
			}
			codes[o.Code] = true

			if o.Next != "" && o.Outcome != "" {
				errs = append(errs, fmt.Sprintf("screen %q: option %q has both a next screen and an outcome", id, o.Code))
			}
			if o.Next == "" && o.Outcome == "" {
				errs = append(errs, fmt.Sprintf("screen %q: option %q has neither a next screen nor an outcome", id, o.Code))
			}
			if o.Next != "" {
				if _, ok := index[o.Next]; !ok {
					errs = append(errs, fmt.Sprintf("screen %q: option %q targets missing screen %q", id, o.Code, o.Next))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("menu: found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}

	// Reachability and cycle check, from the start screen.
	const (
		visiting = 1
		done     = 2
	)
	marks := make(map[domain.ScreenID]int, len(index))
	var cycle error

	var walk func(id domain.ScreenID)
	walk = func(id domain.ScreenID) {
		if cycle != nil || marks[id] == done {
			return
		}
		if marks[id] == visiting {
			cycle = fmt.Errorf("menu: cycle detected through screen %q", id)
			return
		}
		marks[id] = visiting
		for _, o := range index[id].Options {
			if o.Next != "" {
				walk(o.Next)
			}
		}
		marks[id] = done
	}
	walk(def.Start)
	if cycle != nil {
		return cycle
	}

	for id := range index {
		if marks[id] != done {
			errs = append(errs, fmt.Sprintf("screen %q unreachable from %q", id, def.Start))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("menu: found %d errors:\n- %s", len(errs), strings.Join(errs, "\n- "))
	}
	return nil
}
