package dsl_test

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/codec"
	"github.com/wirejson/wirejson/codectest"
	"github.com/wirejson/wirejson/dsl"
)

type Payment interface{ isPayment() }

type Card struct {
	Number string
}

func (Card) isPayment() {}

type Bank struct {
	IBAN string
}

func (Bank) isPayment() {}

func cardCodec() wirejson.Codec[Card] {
	return dsl.Object[Card]().Fields(
		dsl.Field("number", codec.String(),
			func(c Card) string { return c.Number },
			func(c *Card, v string) { c.Number = v }),
	).MustBuild()
}

func bankCodec() wirejson.Codec[Bank] {
	return dsl.Object[Bank]().Fields(
		dsl.Field("iban", codec.String(),
			func(b Bank) string { return b.IBAN },
			func(b *Bank, v string) { b.IBAN = v }),
	).MustBuild()
}

func paymentCodec() wirejson.Codec[Payment] {
	return dsl.Union[Payment]().Variants(
		dsl.Variant[Payment]("card", cardCodec()),
		dsl.Variant[Payment]("bank", bankCodec()),
	).MustBuild()
}

func TestUnion_EncodeInjectsDiscriminator(t *testing.T) {
	c := paymentCodec()
	codectest.EncodeFixture[Payment](t, c, Card{Number: "4111"}, `{"type":"card","number":"4111"}`)
	codectest.EncodeFixture[Payment](t, c, Bank{IBAN: "DE89"}, `{"type":"bank","iban":"DE89"}`)
}

func TestUnion_DecodeDispatches(t *testing.T) {
	c := paymentCodec()
	codectest.DecodeFixture[Payment](t, c, `{"type":"card","number":"4111"}`, Card{Number: "4111"})
	codectest.DecodeFixture[Payment](t, c, `{"type":"bank","iban":"DE89"}`, Bank{IBAN: "DE89"})
	// Field order must not matter for dispatch.
	codectest.DecodeFixture[Payment](t, c, `{"number":"4111","type":"card"}`, Card{Number: "4111"})
}

func TestUnion_DiscriminatorMissing(t *testing.T) {
	codectest.DecodeFailure[Payment](t, paymentCodec(), `{"number":"4111"}`,
		wirejson.CodeDiscriminatorMissing, "/type")
}

func TestUnion_UnknownTagListsAllowed(t *testing.T) {
	iss := codectest.DecodeFailure[Payment](t, paymentCodec(), `{"x":1,"type":"c"}`,
		wirejson.CodeDiscriminatorUnknown, "/type")
	if !strings.Contains(iss.Message, `"card"`) || !strings.Contains(iss.Message, `"bank"`) {
		t.Fatalf("message must enumerate registered tags, got %q", iss.Message)
	}
	if iss.Params["got"] != "c" {
		t.Fatalf("unexpected params: %v", iss.Params)
	}
	allowed, _ := iss.Params["allowed"].([]string)
	if len(allowed) != 2 || allowed[0] != "card" || allowed[1] != "bank" {
		t.Fatalf("allowed must list tags in declared order, got %v", allowed)
	}
}

func TestUnion_NonStringTag(t *testing.T) {
	codectest.DecodeFailure[Payment](t, paymentCodec(), `{"type":7}`,
		wirejson.CodeInvalidType, "/type")
}

func TestUnion_NotAnObject(t *testing.T) {
	codectest.DecodeFailure[Payment](t, paymentCodec(), `"card"`,
		wirejson.CodeInvalidType, "")
}

func TestUnion_VariantErrorKeepsPath(t *testing.T) {
	codectest.DecodeFailure[Payment](t, paymentCodec(), `{"type":"card"}`,
		wirejson.CodeRequired, "/number")
}

func TestUnion_Completeness(t *testing.T) {
	// Every registered variant survives an encode/decode cycle as itself.
	c := paymentCodec()
	for _, p := range []Payment{Card{Number: "1"}, Bank{IBAN: "2"}} {
		data := wirejson.EncodeBytes[Payment](c, p)
		got, err := wirejson.DecodeBytes[Payment](data, c)
		if err != nil {
			t.Fatalf("%#v: %v", p, err)
		}
		if got != p {
			t.Fatalf("cross-variant leakage: got %#v, want %#v", got, p)
		}
	}
}

func TestUnion_CustomDiscriminatorKey(t *testing.T) {
	c := dsl.Union[Payment]().
		Discriminator("kind").
		Variants(dsl.Variant[Payment]("card", cardCodec())).
		MustBuild()
	codectest.EncodeFixture[Payment](t, c, Card{Number: "1"}, `{"kind":"card","number":"1"}`)
	codectest.DecodeFailure[Payment](t, c, `{"type":"card","number":"1"}`,
		wirejson.CodeDiscriminatorMissing, "/kind")
}

func TestUnion_RoundTrip(t *testing.T) {
	codectest.RoundTrip(t, paymentCodec(), func(r *rand.Rand) Payment {
		if r.Intn(2) == 0 {
			return Card{Number: strconv.Itoa(r.Intn(100000))}
		}
		return Bank{IBAN: "DE" + strconv.Itoa(r.Intn(100000))}
	}, 200)
}

// ---- registration failures ----

func TestUnion_DuplicateTagFailsFast(t *testing.T) {
	_, err := dsl.Union[Payment]().Variants(
		dsl.Variant[Payment]("card", cardCodec()),
		dsl.Variant[Payment]("card", bankCodec()),
	).Build()
	if err == nil {
		t.Fatalf("duplicate tag must fail at Build")
	}
}

func TestUnion_DiscriminatorCollisionFailsFast(t *testing.T) {
	collider := dsl.Object[Card]().Fields(
		dsl.Field("type", codec.String(),
			func(c Card) string { return c.Number },
			func(c *Card, v string) { c.Number = v }),
	).MustBuild()
	_, err := dsl.Union[Payment]().Variants(
		dsl.Variant[Payment]("card", collider),
	).Build()
	if err == nil {
		t.Fatalf("field/discriminator collision must fail at Build")
	}
}

func TestUnion_EmptyVariantsFailsFast(t *testing.T) {
	if _, err := dsl.Union[Payment]().Build(); err == nil {
		t.Fatalf("empty union must fail at Build")
	}
}

func TestUnion_NonConformingVariantFailsFast(t *testing.T) {
	type loose struct{ X string }
	looseCodec := dsl.Object[loose]().Fields(
		dsl.Field("x", codec.String(),
			func(l loose) string { return l.X },
			func(l *loose, v string) { l.X = v }),
	).MustBuild()
	_, err := dsl.Union[Payment]().Variants(
		dsl.Variant[Payment]("loose", looseCodec),
	).Build()
	if err == nil {
		t.Fatalf("variant type not satisfying the union must fail at Build")
	}
}
