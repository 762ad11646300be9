package lotto

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func sequentialDraw(contest, start int) Draw {
	nums := make(Numbers, DrawSize)
	for i := range nums {
		nums[i] = start + i
	}
	return Draw{Contest: contest, Numbers: nums}
}

func TestDraw_Validate(t *testing.T) {
	valid := sequentialDraw(1, 1)
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	short := Draw{Contest: 2, Numbers: Numbers{1, 2, 3}}
	if err := short.Validate(); !errors.Is(err, ErrInvalidDraw) {
		t.Errorf("expected ErrInvalidDraw for short draw, got %v", err)
	}

	dup := sequentialDraw(3, 1)
	dup.Numbers[5] = dup.Numbers[4]
	if err := dup.Validate(); !errors.Is(err, ErrInvalidDraw) {
		t.Errorf("expected ErrInvalidDraw for duplicate, got %v", err)
	}

	outOfRange := sequentialDraw(4, 85)
	if err := outOfRange.Validate(); !errors.Is(err, ErrInvalidDraw) {
		t.Errorf("expected ErrInvalidDraw for out-of-range, got %v", err)
	}
}

func TestDraw_JSON(t *testing.T) {
	payload := `{"concurso":2650,"data":"12/08/2024","numeros":["03","08",15,"99"],"premiacao":[{"acertos":20,"vencedores":1,"premio":"R$ 1.000,00"}]}`

	var d Draw
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got, want := []int(d.Numbers), []int{3, 8, 15, 99}; !reflect.DeepEqual(got, want) {
		t.Errorf("Numbers = %v, want %v", got, want)
	}
	if p, ok := d.PrizeFor(20); !ok || p.Winners != 1 {
		t.Errorf("PrizeFor(20) = %+v, %v", p, ok)
	}
	if _, ok := d.PrizeFor(19); ok {
		t.Error("PrizeFor(19) should be missing")
	}

	out, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatal(err)
	}
	nums := back["numeros"].([]any)
	if nums[0] != "03" || nums[3] != "99" {
		t.Errorf("numbers should serialize zero-padded, got %v", nums)
	}
}

func TestDraw_JSONRejectsBadNumbers(t *testing.T) {
	var d Draw
	err := json.Unmarshal([]byte(`{"concurso":1,"numeros":["03","x"]}`), &d)
	if !errors.Is(err, ErrInvalidNumber) {
		t.Errorf("expected ErrInvalidNumber, got %v", err)
	}
}

func TestDraw_HasPrizeData(t *testing.T) {
	d := sequentialDraw(10, 0)
	if d.HasPrizeData() {
		t.Error("draw without prize table must not report prize data")
	}
	d.Prizes = []PrizeTier{{Hits: 20, Prize: "R$ 0,00"}}
	if !d.HasPrizeData() {
		t.Error("expected prize data")
	}
	d.Partial = true
	if d.HasPrizeData() {
		t.Error("partial draws never report prize data")
	}
}
