package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSONEncodesNumber(t *testing.T) {
	payload, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: NewMoneyFromInt(550000)})
	if err != nil {
		t.Fatalf("marshal money failed: %v", err)
	}
	if string(payload) != `{"total":550000}` {
		t.Fatalf("money should encode as a JSON number, got %s", payload)
	}

	fractional, err := json.Marshal(NewMoneyFromFloat(12.345))
	if err != nil {
		t.Fatalf("marshal fractional money failed: %v", err)
	}
	if string(fractional) != "12.35" {
		t.Fatalf("money should round to 2 digits, got %s", fractional)
	}
}

func TestMoneyJSONAcceptsStringAndNumber(t *testing.T) {
	cases := map[string]string{
		`"120000"`: "120000",
		`120000.5`: "120000.5",
		`""`:       "0",
		`null`:     "0",
	}
	for raw, want := range cases {
		var m Money
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			t.Fatalf("unmarshal %s failed: %v", raw, err)
		}
		if m.String() != want {
			t.Fatalf("unmarshal %s want %s got %s", raw, want, m.String())
		}
	}
}
