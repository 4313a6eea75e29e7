/*
Package warnings provides a process-wide, filterable warning notifier.

It is used to announce deprecated APIs, most notably the legacy ovruntime namespace, without
flooding the diagnostic output: a warning is matched against an ordered chain of filters and the
winning filter's action decides whether the warning is printed, printed once, suppressed, or
escalated to an error.

# Filters

A filter maps a (category, module pattern) pair to an Action:

	r := warnings.NewRegistry()
	err := r.RegisterFilter(warnings.DeprecationWarning, `github\.com/acme/legacy`, warnings.ActionOnce)

Filters are scanned in registration order and the first match wins. A category matches when the
warning's category is the filter's category or one of its descendants. Registering the same
(category, module pattern, message pattern) key again updates the action in place.

Warnings that match no filter use the registry's default action, which is ActionDefault: print
the first occurrence for each source location.

# Process-wide state

[Default] returns the single registry shared by the process. Libraries should warn through it;
tests should build their own with [NewRegistry] and inject it.
*/
package warnings
