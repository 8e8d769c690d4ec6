package view

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemory_ValuesFollowDeclaredOrder(t *testing.T) {
	m := NewMemoryFrom([]string{"nome", "cpf"}, map[string]string{
		"cpf":   "111.444.777-35",
		"extra": "x",
		"aaa":   "y",
	})

	if diff := cmp.Diff([]string{"nome", "cpf", "aaa", "extra"}, m.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
	want := map[string]string{"nome": "", "cpf": "111.444.777-35", "aaa": "y", "extra": "x"}
	if diff := cmp.Diff(want, m.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_SetValueDeclaresUnknownFields(t *testing.T) {
	m := NewMemory("cep")
	m.SetValue("bairro", "Bela Vista")
	if got := m.Value("bairro"); got != "Bela Vista" {
		t.Fatalf("expected bairro to be set, got %q", got)
	}
	if diff := cmp.Diff([]string{"cep", "bairro"}, m.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_ErrorsClearEntirely(t *testing.T) {
	m := NewMemory("nome", "cpf")
	m.AddError("nome", "first")
	m.AddError("cpf", "second")
	m.AddError("cpf", "third")

	if diff := cmp.Diff([]string{"second", "third"}, m.ErrorsFor("cpf")); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}

	m.ClearErrors()
	if got := m.Errors(); len(got) != 0 {
		t.Fatalf("expected no errors after clear, got %#v", got)
	}
}

func TestSubmitEvent_PreventDefault(t *testing.T) {
	var event SubmitEvent
	if event.DefaultPrevented() {
		t.Fatalf("expected fresh event not to be prevented")
	}
	event.PreventDefault()
	if !event.DefaultPrevented() {
		t.Fatalf("expected event to be prevented")
	}

	var nilEvent *SubmitEvent
	nilEvent.PreventDefault()
	if nilEvent.DefaultPrevented() {
		t.Fatalf("expected nil event to report not prevented")
	}
}
