// Package render holds helpers shared by the contact form front-ends: mapping
// server error payloads onto form fields and merging hidden inputs into the
// submitted payload.
package render
