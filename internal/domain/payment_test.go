package domain

import (
	"errors"
	"testing"
)

func TestPaymentTypeFromCode(t *testing.T) {
	cases := []struct {
		code int32
		want PaymentType
	}{
		{0, PaymentCash},
		{1, PaymentCard},
		{2, PaymentZD},
	}
	for _, c := range cases {
		got, err := PaymentTypeFromCode(c.code)
		if err != nil {
			t.Fatalf("code %d: unexpected error %v", c.code, err)
		}
		if got != c.want {
			t.Errorf("code %d: got %q, want %q", c.code, got, c.want)
		}
	}
}

func TestPaymentTypeFromCode_Invalid(t *testing.T) {
	for _, code := range []int32{-1, 3, 42} {
		if _, err := PaymentTypeFromCode(code); !errors.Is(err, ErrPaymentTypeInvalid) {
			t.Errorf("code %d: expected ErrPaymentTypeInvalid, got %v", code, err)
		}
	}
}

func TestPaymentTypeCode_RoundTrip(t *testing.T) {
	for _, pt := range []PaymentType{PaymentCash, PaymentCard, PaymentZD} {
		back, err := PaymentTypeFromCode(pt.Code())
		if err != nil {
			t.Fatalf("%q: unexpected error %v", pt, err)
		}
		if back != pt {
			t.Errorf("%q: round trip gave %q", pt, back)
		}
	}
}

func TestPaymentTypeCode_Unknown(t *testing.T) {
	if got := PaymentType("barter").Code(); got != -1 {
		t.Errorf("expected -1 for unknown payment type, got %d", got)
	}
}

func TestCandleAggregateValidateInvariants(t *testing.T) {
	agg := CandleAggregate{
		Candle: Candle{Name: "Лавандовый сон", RealCostMinor: 10000, SellPriceMinor: 25000},
		Ingredient: CandleIngredient{
			WickDiameterCM: 1,
			WaxNeededGram:  180,
		},
	}
	if errs := agg.ValidateInvariants(); len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}

	bad := CandleAggregate{
		Candle: Candle{Name: "", RealCostMinor: -5},
	}
	errs := bad.ValidateInvariants()
	want := []error{ErrCandleNameRequired, ErrPriceNegative, ErrWickDiameterInvalid, ErrWaxGramsInvalid}
	if len(errs) != len(want) {
		t.Fatalf("expected %d violations, got %v", len(want), errs)
	}
	for i, w := range want {
		if !errors.Is(errs[i], w) {
			t.Errorf("violation %d: expected %v, got %v", i, w, errs[i])
		}
	}
}
