package dsl_test

import (
	"math/rand"
	"strconv"
	"testing"

	wirejson "github.com/wirejson/wirejson"
	"github.com/wirejson/wirejson/codec"
	"github.com/wirejson/wirejson/codectest"
	"github.com/wirejson/wirejson/dsl"
)

type Owner struct {
	Address string
}

func ownerCodec() wirejson.Codec[Owner] {
	return dsl.Object[Owner]().Fields(
		dsl.Field("address", codec.String(),
			func(o Owner) string { return o.Address },
			func(o *Owner, v string) { o.Address = v }),
	).MustBuild()
}

func TestObject_OwnerFixture(t *testing.T) {
	c := ownerCodec()
	codectest.DecodeFixture(t, c, `{"address":"221B Baker St"}`, Owner{Address: "221B Baker St"})
	codectest.EncodeFixture(t, c, Owner{Address: "221B Baker St"}, `{"address":"221B Baker St"}`)
}

func TestObject_ExtraFieldsIgnoredOnDecode(t *testing.T) {
	codectest.DecodeFixture(t, ownerCodec(), `{"address":"x","unrelated":1}`, Owner{Address: "x"})
}

type account struct {
	Name  string
	Score int64
	Note  string
}

func accountCodec() wirejson.Codec[account] {
	return dsl.Object[account]().Fields(
		dsl.Field("name", codec.String(),
			func(a account) string { return a.Name },
			func(a *account, v string) { a.Name = v }),
		dsl.Field("score", codec.Int64(),
			func(a account) int64 { return a.Score },
			func(a *account, v int64) { a.Score = v }),
		dsl.Optional("note", codec.String(),
			func(a account) (string, bool) { return a.Note, a.Note != "" },
			func(a *account, v string) { a.Note = v }),
	).MustBuild()
}

func TestObject_FirstFailureWins(t *testing.T) {
	// Both name and score are invalid; decode stops at the first declared field.
	iss := codectest.DecodeFailure(t, accountCodec(), `{"name":1,"score":"x"}`, wirejson.CodeInvalidType, "/name")
	if iss.Params["got"] != "number" {
		t.Fatalf("unexpected params: %v", iss.Params)
	}
}

func TestObject_MissingRequiredField(t *testing.T) {
	codectest.DecodeFailure(t, accountCodec(), `{"name":"a"}`, wirejson.CodeRequired, "/score")
}

func TestObject_OptionalField(t *testing.T) {
	c := accountCodec()
	codectest.DecodeFixture(t, c, `{"name":"a","score":1}`, account{Name: "a", Score: 1})
	codectest.DecodeFixture(t, c, `{"name":"a","score":1,"note":"hi"}`, account{Name: "a", Score: 1, Note: "hi"})
	codectest.EncodeFixture(t, c, account{Name: "a", Score: 1}, `{"name":"a","score":1}`)
	codectest.EncodeFixture(t, c, account{Name: "a", Score: 1, Note: "hi"}, `{"name":"a","score":1,"note":"hi"}`)
}

func TestObject_DeclaredOrderOnEncode(t *testing.T) {
	codectest.EncodeFixture(t, accountCodec(), account{Name: "z", Score: 3}, `{"name":"z","score":3}`)
}

func TestObject_NotAnObject(t *testing.T) {
	codectest.DecodeFailure(t, ownerCodec(), `[1,2]`, wirejson.CodeInvalidType, "")
}

func TestObject_RoundTrip(t *testing.T) {
	codectest.RoundTrip(t, accountCodec(), func(r *rand.Rand) account {
		a := account{
			Name:  "user-" + strconv.Itoa(r.Intn(10_000)),
			Score: r.Int63n(2000) - 1000,
		}
		if r.Intn(2) == 0 {
			a.Note = "n" + strconv.Itoa(r.Intn(100))
		}
		return a
	}, 200)
}

// ---- nested flattening ----

type shipment struct {
	City string
	Zip  string
	Kg   int64
}

func shipmentCodec() wirejson.Codec[shipment] {
	return dsl.Object[shipment]().Fields(
		dsl.FieldAt([]string{"destination", "address", "city"}, codec.String(),
			func(s shipment) string { return s.City },
			func(s *shipment, v string) { s.City = v }),
		dsl.FieldAt([]string{"destination", "address", "zip"}, codec.String(),
			func(s shipment) string { return s.Zip },
			func(s *shipment, v string) { s.Zip = v }),
		dsl.FieldAt([]string{"parcel", "weight"}, codec.Int64(),
			func(s shipment) int64 { return s.Kg },
			func(s *shipment, v int64) { s.Kg = v }),
	).MustBuild()
}

func TestObject_NestedFlattening(t *testing.T) {
	c := shipmentCodec()
	src := `{"destination":{"address":{"city":"London","zip":"NW1"}},"parcel":{"weight":3}}`
	want := shipment{City: "London", Zip: "NW1", Kg: 3}
	codectest.DecodeFixture(t, c, src, want)
	// Sibling bindings under the same prefix merge into one nested object.
	codectest.EncodeFixture(t, c, want, src)
}

func TestObject_NestedMissingReportsFullChain(t *testing.T) {
	codectest.DecodeFailure(t, shipmentCodec(),
		`{"destination":{"address":{"zip":"NW1"}},"parcel":{"weight":3}}`,
		wirejson.CodeRequired, "/destination/address/city")
	codectest.DecodeFailure(t, shipmentCodec(),
		`{"destination":{},"parcel":{"weight":3}}`,
		wirejson.CodeRequired, "/destination/address")
}

func TestObject_RoundTripNested(t *testing.T) {
	codectest.RoundTrip(t, shipmentCodec(), func(r *rand.Rand) shipment {
		return shipment{
			City: "c" + strconv.Itoa(r.Intn(100)),
			Zip:  strconv.Itoa(10000 + r.Intn(90000)),
			Kg:   r.Int63n(50),
		}
	}, 100)
}

// ---- registration failures ----

func TestObject_DuplicateFieldFailsFast(t *testing.T) {
	_, err := dsl.Object[Owner]().Fields(
		dsl.Field("address", codec.String(),
			func(o Owner) string { return o.Address },
			func(o *Owner, v string) { o.Address = v }),
		dsl.Field("address", codec.String(),
			func(o Owner) string { return o.Address },
			func(o *Owner, v string) { o.Address = v }),
	).Build()
	if err == nil {
		t.Fatalf("duplicate field must fail at Build")
	}
}

func TestObject_PrefixConflictFailsFast(t *testing.T) {
	_, err := dsl.Object[shipment]().Fields(
		dsl.Field("parcel", codec.String(),
			func(s shipment) string { return s.City },
			func(s *shipment, v string) { s.City = v }),
		dsl.FieldAt([]string{"parcel", "weight"}, codec.Int64(),
			func(s shipment) int64 { return s.Kg },
			func(s *shipment, v int64) { s.Kg = v }),
	).Build()
	if err == nil {
		t.Fatalf("prefix conflict must fail at Build")
	}
}
