package cache

import (
	"strings"
	"testing"
)

func joinWithSeparator(parts ...string) string {
	return strings.Join(parts, KeySeparator)
}

func TestDefaultKeySerializer_BasicTypes(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	tests := []struct {
		name     string
		endpoint string
		args     []any
		want     string
	}{
		{
			name:     "no args",
			endpoint: "ListProducts",
			args:     []any{},
			want:     "ListProducts",
		},
		{
			name:     "single id",
			endpoint: "GetProduct",
			args:     []any{"p1"},
			want:     joinWithSeparator("GetProduct", "p1"),
		},
		{
			name:     "compound parameters",
			endpoint: "NearestRoutePrice",
			args:     []any{"lagos", "p1"},
			want:     joinWithSeparator("NearestRoutePrice", "lagos", "p1"),
		},
		{
			name:     "mixed basic types",
			endpoint: "ListOrders",
			args:     []any{1, true, 2.5},
			want:     joinWithSeparator("ListOrders", "1", "true", "2.5"),
		},
		{
			name:     "nil argument",
			endpoint: "ListDepots",
			args:     []any{nil},
			want:     joinWithSeparator("ListDepots", "nil"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := serializer.SerializeKey(tt.endpoint, tt.args...)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDefaultKeySerializer_Structs(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	type listParams struct {
		Page   int
		Search string
		hidden bool
	}

	got := serializer.SerializeKey("ListProducts", listParams{Page: 2, Search: "opc"})
	want := joinWithSeparator("ListProducts", "struct:{Page:2,Search:opc}")
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	// Unexported fields never leak into the key.
	withHidden := serializer.SerializeKey("ListProducts", listParams{Page: 2, Search: "opc", hidden: true})
	if withHidden != want {
		t.Errorf("expected unexported fields to be skipped, got %q", withHidden)
	}
}

func TestDefaultKeySerializer_PointersAndSlices(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	page := 3
	got := serializer.SerializeKey("ListOrders", &page)
	if want := joinWithSeparator("ListOrders", "3"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	var nilPtr *int
	got = serializer.SerializeKey("ListOrders", nilPtr)
	if want := joinWithSeparator("ListOrders", "nil"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}

	got = serializer.SerializeKey("ListOrders", []string{"pending", "paid"})
	if want := joinWithSeparator("ListOrders", "slice[2]:{pending,paid}"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestDefaultKeySerializer_MapsAreDeterministic(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	args := map[string]string{"state": "kano", "product": "p2", "depot": "d9"}
	first := serializer.SerializeKey("Lookup", args)
	for i := 0; i < 20; i++ {
		if got := serializer.SerializeKey("Lookup", args); got != first {
			t.Fatalf("expected stable key across runs, got %q and %q", first, got)
		}
	}
}

func TestDefaultKeySerializer_DistinctArgsDistinctKeys(t *testing.T) {
	serializer := NewDefaultKeySerializer()

	a := serializer.SerializeKey("NearestRoutePrice", "lagos", "p1")
	b := serializer.SerializeKey("NearestRoutePrice", "lagos", "p2")
	c := serializer.SerializeKey("NearestRoutePrice", "kano", "p1")

	if a == b || a == c || b == c {
		t.Errorf("expected distinct keys, got %q %q %q", a, b, c)
	}
}
