// Package submit validates and posts the contact form.
//
// A submission is a single pass with no retries: previous inline errors are
// cleared, every required field is checked for a non-blank value, the CPF
// field is checked for a valid checksum, and only when nothing was flagged are
// the named inputs serialized to a flat JSON object and posted to the form's
// action URL. The POST is the only suspension point.
//
// Two behaviours are explicit options rather than guesses:
//
//   - WithNavigateOnSuccess controls whether a successful submission still lets
//     the native navigation proceed (the default) or cancels it.
//   - WithSurfaceFailures controls whether a transport failure is only logged
//     (the default) or also shown to the user.
package submit
