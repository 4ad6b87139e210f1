// Package menu defines the static menu tree: screens, options and
// terminal outcomes. A Menu is validated once at startup and read-only
// afterwards; the dialog engine only performs lookups against it.
package menu
