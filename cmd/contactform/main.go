// Package main provides the contactform CLI.
//
// Usage:
//
//	contactform lookup 01001000
//	contactform cpf 111.444.777-35
//	contactform fill
//	contactform render --output contact.html
//	contactform serve --addr :8080
//
// Settings come from contactform.yaml in the working directory, or --config.
package main

func main() {
	Execute()
}
