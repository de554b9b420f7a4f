package model

import (
	"encoding/json"
	"testing"
)

func TestErrf(t *testing.T) {
	e := Errf(KindNotFound, "file not found: %s", "etc/hostname")
	if e.Kind != KindNotFound {
		t.Errorf("kind = %s", e.Kind)
	}
	if e.Error() != "file not found: etc/hostname" {
		t.Errorf("message = %q", e.Error())
	}
}

func TestErrorResponseJSON(t *testing.T) {
	raw, err := json.Marshal(ErrorResponse{
		Error:  "path access denied",
		Kind:   KindConfinement,
		Params: map[string]string{"report": "r1", "path": "../etc"},
	})
	if err != nil {
		t.Fatal(err)
	}

	var decoded ErrorResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Kind != KindConfinement || decoded.Params["path"] != "../etc" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestErrorResponseOmitsEmptyParams(t *testing.T) {
	raw, err := json.Marshal(ErrorResponse{Error: "boom", Kind: KindReadFailure})
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(raw, &m); err != nil {
		t.Fatal(err)
	}
	if _, ok := m["params"]; ok {
		t.Errorf("params should be omitted: %s", raw)
	}
}
