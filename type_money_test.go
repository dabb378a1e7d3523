package drip

import (
	"encoding/json"
	"testing"
)

func TestMoneyString(t *testing.T) {
	tests := []struct {
		m    Money
		want string
	}{
		{M(1234.56, "USD"), "$1,234.56"},
		{M(1235, "KRW"), "₩1,235"},
		{M(0.5, "USD"), "$0.50"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := M(10.50, "USD")
	b := M(4.25, "USD")

	if got := a.Add(b); !got.Equal(M(14.75, "USD")) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); !got.Equal(M(6.25, "USD")) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Mul(Q(3)); !got.Equal(M(31.50, "USD")) {
		t.Errorf("Mul = %v", got)
	}
}

func TestMoneyDivPrice(t *testing.T) {
	cash := M(110, "USD")
	price := M(30, "USD")

	q := cash.DivPrice(price)
	if q.IntPart() != 3 {
		t.Errorf("IntPart = %d, want 3", q.IntPart())
	}
}

func TestMoneyWeakCurrency(t *testing.T) {
	// The zero Money merges into any currency.
	var zero Money
	got := zero.Add(M(5, "KRW"))
	if got.Currency() != "KRW" {
		t.Errorf("Currency = %q, want KRW", got.Currency())
	}
}

func TestMoneyAmount(t *testing.T) {
	if got := M(1234.5, "KRW").Amount(); got != "1234.50" {
		t.Errorf("Amount = %q, want 1234.50", got)
	}
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(M(12.345, "USD"))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"currency":"USD","amount":12.35}`
	if string(b) != want {
		t.Errorf("MarshalJSON = %s, want %s", b, want)
	}
}

func TestQuantityPercent(t *testing.T) {
	if got := Q(8).Percent(Q(100)); !got.Equal(Percent(8)) {
		t.Errorf("Percent = %v, want 8%%", got)
	}
	if got := Percent(8).String(); got != "8.0%" {
		t.Errorf("String = %q, want 8.0%%", got)
	}
}
