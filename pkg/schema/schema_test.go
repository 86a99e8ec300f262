package schema

import (
	"context"
	"testing"

	"github.com/codelayers/strata/pkg/classify"
	"github.com/codelayers/strata/pkg/render"
)

func TestValidateAcceptsEngineOutput(t *testing.T) {
	t.Parallel()

	src := []byte(`const x: string = "hello";`)

	regions, err := classify.NewEngine().Classify(context.Background(), src)
	if err != nil {
		t.Fatal(err)
	}

	doc, err := render.Format(render.NewDocument("a.tsx", len(src), regions), "json")
	if err != nil {
		t.Fatal(err)
	}

	result, err := Validate(doc)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if !result.Valid() {
		t.Errorf("engine output rejected: %v", result.Errors())
	}
}

func TestValidateRejectsBadLayer(t *testing.T) {
	t.Parallel()

	doc := []byte(`{"length": 5, "regions": [{"start": 0, "end": 5, "layer": "cobol"}]}`)

	result, err := Validate(doc)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if result.Valid() {
		t.Error("document with unknown layer accepted")
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	t.Parallel()

	result, err := Validate([]byte(`{"path": "a.tsx"}`))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	if result.Valid() {
		t.Error("document without required fields accepted")
	}
}
