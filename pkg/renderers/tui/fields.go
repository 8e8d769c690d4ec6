package tui

import "strings"

// Kind selects the prompt used for a field.
type Kind string

const (
	KindInput    Kind = "input"
	KindSelect   Kind = "select"
	KindTextArea Kind = "textarea"
)

// Choice is a select option; Value is stored, Label is shown.
type Choice struct {
	Value string
	Label string
}

// Field describes how one named input is prompted.
type Field struct {
	Name    string
	Label   string
	Kind    Kind
	Choices []Choice
	Help    string
}

// DefaultFields returns the prompts of the contact form in form order.
func DefaultFields() []Field {
	return []Field{
		{Name: "nome", Label: "Nome", Kind: KindInput},
		{Name: "cpf", Label: "CPF", Kind: KindInput, Help: "11 dígitos, com ou sem pontuação"},
		{Name: "idade", Label: "Idade", Kind: KindInput},
		{Name: "aniversario", Label: "Data de nascimento", Kind: KindInput, Help: "AAAA-MM-DD"},
		{Name: "sexo", Label: "Sexo", Kind: KindSelect, Choices: []Choice{
			{Value: "F", Label: "Feminino"},
			{Value: "M", Label: "Masculino"},
			{Value: "O", Label: "Outro"},
		}},
		{Name: "email", Label: "E-mail", Kind: KindInput},
		{Name: "cep", Label: "CEP", Kind: KindInput, Help: "8 dígitos; o endereço é preenchido automaticamente"},
		{Name: "endereco", Label: "Endereço", Kind: KindInput},
		{Name: "numero", Label: "Número", Kind: KindInput},
		{Name: "bairro", Label: "Bairro", Kind: KindInput},
		{Name: "cidade", Label: "Cidade", Kind: KindInput},
		{Name: "estado", Label: "Estado", Kind: KindInput},
		{Name: "mensagem", Label: "Mensagem", Kind: KindTextArea},
	}
}

func fieldFor(name string, known map[string]Field) Field {
	if field, ok := known[name]; ok {
		return field
	}
	return Field{Name: name, Label: strings.TrimSpace(name), Kind: KindInput}
}
