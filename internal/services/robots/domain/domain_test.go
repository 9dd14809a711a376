package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	perr "robots/internal/platform/errors"
)

func TestCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   Payload
		ok   bool
	}{
		{name: "exact keys", in: Payload{"name": "Yern", "purpose": "AI"}, ok: true},
		{name: "exact keys any values", in: Payload{"name": 5, "purpose": nil}, ok: true},
		{name: "nil", in: nil},
		{name: "empty", in: Payload{}},
		{name: "name only", in: Payload{"name": "Yern"}},
		{name: "purpose only", in: Payload{"purpose": "AI"}},
		{name: "single unknown", in: Payload{"color": "red"}},
		{name: "required plus unknown", in: Payload{"name": "Yern", "purpose": "AI", "invalid": "No"}},
		{name: "one required plus unknown", in: Payload{"name": "Yern", "invalid": "No"}},
		{name: "two unknown", in: Payload{"a": 1, "b": 2}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			v, err := Check(tt.in)
			if tt.ok {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				got := v.Fields()
				if len(got) != len(tt.in) {
					t.Fatalf("fields = %v, want %v", got, tt.in)
				}
				for k, want := range tt.in {
					if got[k] != want {
						t.Fatalf("field %q = %v, want %v", k, got[k], want)
					}
				}
				return
			}
			if !errors.Is(err, ErrInvalidParameters) {
				t.Fatalf("err = %v, want ErrInvalidParameters", err)
			}
			if perr.HTTPStatus(err) != 422 {
				t.Fatalf("status = %d", perr.HTTPStatus(err))
			}
		})
	}
}

func TestValidatedPayload_FieldsIsACopy(t *testing.T) {
	t.Parallel()

	v, err := Check(Payload{"name": "Yern", "purpose": "AI"})
	if err != nil {
		t.Fatal(err)
	}
	f := v.Fields()
	f["name"] = "changed"
	if v.Fields()["name"] != "Yern" {
		t.Fatal("Fields leaked the internal map")
	}
	if len((ValidatedPayload{}).Fields()) != 0 {
		t.Fatal("zero value should have no fields")
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	v, _ := Check(Payload{"name": "Yern", "purpose": "AI"})
	c, err := Build(v)
	if err != nil {
		t.Fatal(err)
	}
	if c.Name == nil || *c.Name != "Yern" || c.Purpose == nil || *c.Purpose != "AI" {
		t.Fatalf("changes = %+v", c)
	}

	v, _ = Check(Payload{"name": 7, "purpose": "AI"})
	_, err = Build(v)
	if !errors.Is(err, ErrInvalidParameters) {
		t.Fatalf("non string value: err = %v", err)
	}
	if e, ok := perr.As(err); !ok || e.Field() != "name" {
		t.Fatalf("field not attached: %v", err)
	}

	c, err = Build(ValidatedPayload{})
	if err != nil || !c.Empty() {
		t.Fatalf("zero payload: %+v %v", c, err)
	}
}

func TestPurposeOf(t *testing.T) {
	t.Parallel()

	got, err := PurposeOf(Payload{"purpose": "Digging", "name": "ignored"})
	if err != nil || got != "Digging" {
		t.Fatalf("got %q %v", got, err)
	}
	for _, p := range []Payload{nil, {"name": "Yern"}, {"purpose": 3}, {"purpose": nil}} {
		if _, err := PurposeOf(p); !errors.Is(err, ErrInvalidParameters) {
			t.Fatalf("PurposeOf(%v) err = %v", p, err)
		}
	}
}

func TestFilterAndChangesEmpty(t *testing.T) {
	t.Parallel()

	if !(Filter{}).Empty() {
		t.Fatal("zero filter should be empty")
	}
	name := "Yern"
	if (Filter{Name: &name}).Empty() {
		t.Fatal("filter with name is not empty")
	}
	if !(Changes{}).Empty() || (Changes{Purpose: &name}).Empty() {
		t.Fatal("Changes.Empty mismatch")
	}
}

func TestEnvelopeJSON(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC)
	a := Robot{ID: 1, Name: "Yern", Purpose: "AI", CreatedAt: ts, UpdatedAt: ts}
	b := Robot{ID: 2, Name: "Bolt", Purpose: "Lift", CreatedAt: ts, UpdatedAt: ts}

	single, err := json.Marshal(Single(a))
	if err != nil {
		t.Fatal(err)
	}
	want := `{"data":{"attributes":{"id":1,"name":"Yern","purpose":"AI","created_at":"2025-09-03T13:00:00Z","updated_at":"2025-09-03T13:00:00Z"}}}`
	if string(single) != want {
		t.Fatalf("single:\n got %s\nwant %s", single, want)
	}

	many, err := json.Marshal(Many([]Robot{a, b}))
	if err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Data struct {
			Attributes map[string]struct {
				Attributes Robot `json:"attributes"`
			} `json:"attributes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(many, &decoded); err != nil {
		t.Fatalf("collection is not valid JSON: %v\n%s", err, many)
	}
	if decoded.Data.Attributes["0"].Attributes.Name != "Yern" || decoded.Data.Attributes["1"].Attributes.Name != "Bolt" {
		t.Fatalf("collection = %s", many)
	}

	empty, _ := json.Marshal(Many(nil))
	if string(empty) != `{"data":{"attributes":{}}}` {
		t.Fatalf("empty collection = %s", empty)
	}
}

func TestCollection_KeepsStoreOrder(t *testing.T) {
	t.Parallel()

	rs := make([]Robot, 12)
	for i := range rs {
		rs[i].ID = int64(i + 1)
	}
	b, err := Collection(rs).MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	if _, err := dec.Token(); err != nil { // {
		t.Fatal(err)
	}
	for i := 0; dec.More(); i++ {
		key, _ := dec.Token()
		if key != strconv.Itoa(i) {
			t.Fatalf("key %d = %v", i, key)
		}
		var item Item
		if err := dec.Decode(&item); err != nil {
			t.Fatal(err)
		}
		if item.Attributes.ID != int64(i+1) {
			t.Fatalf("position %d holds id %d", i, item.Attributes.ID)
		}
	}
}

func TestEnvelopeAccessors(t *testing.T) {
	t.Parallel()

	if r, ok := Single(Robot{ID: 3}).Robot(); !ok || r.ID != 3 {
		t.Fatalf("Robot() = %+v %v", r, ok)
	}
	if _, ok := Single(Robot{}).Robots(); ok {
		t.Fatal("single envelope is not a collection")
	}
	if rs, ok := Many([]Robot{{ID: 1}, {ID: 2}}).Robots(); !ok || len(rs) != 2 {
		t.Fatalf("Robots() = %v %v", rs, ok)
	}
}
