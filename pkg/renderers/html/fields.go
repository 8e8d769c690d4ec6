package html

import "strings"

// FieldSpec describes how one named input is rendered.
type FieldSpec struct {
	Name      string
	Label     string
	Type      string
	Options   []SelectOption
	MaxLength int
	// Lookup marks the postal-code input that carries the lookup button and
	// feedback element.
	Lookup bool
}

// SelectOption is a select choice.
type SelectOption struct {
	Value string
	Label string
}

// DefaultFieldSpecs returns the inputs of the contact page in form order.
func DefaultFieldSpecs() []FieldSpec {
	return []FieldSpec{
		{Name: "nome", Label: "Nome", Type: "text"},
		{Name: "cpf", Label: "CPF", Type: "text", MaxLength: 14},
		{Name: "idade", Label: "Idade", Type: "number"},
		{Name: "aniversario", Label: "Data de nascimento", Type: "date"},
		{Name: "sexo", Label: "Sexo", Type: "select", Options: []SelectOption{
			{Value: "F", Label: "Feminino"},
			{Value: "M", Label: "Masculino"},
			{Value: "O", Label: "Outro"},
		}},
		{Name: "email", Label: "E-mail", Type: "email"},
		{Name: "cep", Label: "CEP", Type: "text", MaxLength: 8, Lookup: true},
		{Name: "endereco", Label: "Endereço", Type: "text"},
		{Name: "numero", Label: "Número", Type: "text"},
		{Name: "bairro", Label: "Bairro", Type: "text"},
		{Name: "cidade", Label: "Cidade", Type: "text"},
		{Name: "estado", Label: "Estado", Type: "text", MaxLength: 2},
		{Name: "mensagem", Label: "Mensagem", Type: "textarea"},
	}
}

// specsFor returns a spec per name, reusing known specs and falling back to a
// text input labelled with the name.
func specsFor(names []string, known []FieldSpec) []FieldSpec {
	index := make(map[string]FieldSpec, len(known))
	for _, spec := range known {
		index[spec.Name] = spec
	}
	out := make([]FieldSpec, 0, len(names))
	for _, name := range names {
		if spec, ok := index[name]; ok {
			out = append(out, spec)
			continue
		}
		out = append(out, FieldSpec{Name: name, Label: labelFor(name), Type: "text"})
	}
	return out
}

func labelFor(name string) string {
	clean := strings.NewReplacer("_", " ", "-", " ").Replace(strings.TrimSpace(name))
	if clean == "" {
		return ""
	}
	return strings.ToUpper(clean[:1]) + clean[1:]
}
