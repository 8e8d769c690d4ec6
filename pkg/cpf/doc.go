// Package cpf validates Brazilian individual taxpayer identifiers (CPF).
//
// A CPF carries eleven digits; the last two are check digits derived from the
// first nine with a modulo-11 weighted sum. Punctuation such as dots and the
// dash in "111.444.777-35" is ignored before any check runs, so the formatted
// and bare forms of an identifier always validate identically.
//
// Every function in this package is pure.
package cpf
