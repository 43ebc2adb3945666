package currency

import (
	"testing"

	"github.com/mmynk/invoicer/internal/models"
)

func TestDefaultIsFirst(t *testing.T) {
	all := All()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}
	if Default() != all[0] {
		t.Errorf("Default() = %v, want %v", Default(), all[0])
	}
}

func TestLookup(t *testing.T) {
	eur, ok := Lookup("EUR")
	if !ok {
		t.Fatal("expected EUR in catalog")
	}
	if eur.Symbol != "€" {
		t.Errorf("EUR symbol = %q, want €", eur.Symbol)
	}

	if _, ok := Lookup("XXX"); ok {
		t.Error("expected XXX to be absent")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := All()
	all[0] = models.Currency{Code: "ZZZ"}
	if Default().Code == "ZZZ" {
		t.Error("All() exposes the internal catalog")
	}
}

func TestResolve(t *testing.T) {
	if got := Resolve(models.Currency{Code: "GBP"}); got.Symbol != "£" {
		t.Errorf("Resolve(GBP) = %v", got)
	}
	if got := Resolve(models.Currency{Code: "???", Symbol: "?"}); got != Default() {
		t.Errorf("Resolve(unknown) = %v, want default", got)
	}
}
