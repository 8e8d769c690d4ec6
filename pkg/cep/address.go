package cep

// Address is the subset of a lookup response written into a form.
type Address struct {
	CEP          string `json:"cep,omitempty"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento,omitempty"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	IBGE         string `json:"ibge,omitempty"`
	DDD          string `json:"ddd,omitempty"`
}

// CodeLength is the number of characters in a postal code.
const CodeLength = 8

// ValidLength reports whether code has exactly CodeLength characters. Only the
// length is checked; codes with non-digit characters still pass.
func ValidLength(code string) bool {
	return len(code) == CodeLength
}
