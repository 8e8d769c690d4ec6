// Package postalcode exposes the postal-code lookup as a same-origin JSON
// endpoint, so a rendered contact page can autofill addresses without calling
// the public lookup service from the browser.
//
// The handler answers GET and HEAD on {route}/{code} (or {route}?code=...)
// with {"data": address}. Codes that are not eight characters long get 400,
// unknown codes 404 and upstream failures 502, each with {"error": message}.
package postalcode
