package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-contactform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken(" _csrf ", "token123"),
		render.HiddenField{Name: "version", Value: "4"},
		render.HiddenField{Name: "  ", Value: "skip"},
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"version":  "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeHiddenFields_Empty(t *testing.T) {
	if got := render.MergeHiddenFields(nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
	if got := render.MergeHiddenFields(nil, render.CSRFToken(" ", "x")); got != nil {
		t.Fatalf("expected nil for blank names, got %#v", got)
	}
}
