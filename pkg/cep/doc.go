// Package cep looks up Brazilian postal codes (CEP) against a ViaCEP
// compatible REST service.
//
// The client issues a single GET per call to {base}/ws/{code}/json/ and maps
// the response into an Address. A response carrying the "erro" key is reported
// as ErrNotFound; transport failures, unexpected status codes and malformed
// bodies are reported as *LookupError. The client never retries and configures
// no timeout of its own; supply an *http.Client with a Timeout when one is
// needed.
package cep
