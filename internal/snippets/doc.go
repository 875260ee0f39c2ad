// Package snippets persists the snippet document, an opaque UTF-8 blob owned
// by the window content, under the per-user data directory.
//
// # Fetch fallback chain
//
// Fetch tries the canonical path first. When that fails it tries the legacy
// path left behind by earlier releases and copies a hit forward. When both
// fail it asks the user, through a Prompter, whether any snippets were ever
// created and, if so, lets them pick the old file:
//
//	TryCanonical -> TryLegacy -> AskedEverCreated=No  -> Absent
//	                          -> AskedEverCreated=Yes -> PromptLocateFile
//	                             -> TryUserChosenPath -> Found    -> MigrateAndReturn
//	                                                  -> NotFound -> Absent
//
// No read or write error escapes the store: callers see either the document
// or "absent".
package snippets
