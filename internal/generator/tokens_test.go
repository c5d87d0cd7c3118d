package generator

import (
	"reflect"
	"testing"
)

func TestScanTypeTokens(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		typeText string
		expected []string
	}{
		{name: "Primitive", typeText: "string", expected: nil},
		{name: "Simple", typeText: "Role", expected: []string{"Role"}},
		{name: "Generic", typeText: "Array<Foo>", expected: []string{"Array", "Foo"}},
		{name: "Union", typeText: "Foo | Bar", expected: []string{"Foo", "Bar"}},
		{name: "Deduplicated", typeText: "Map<Foo, Foo>", expected: []string{"Map", "Foo"}},
		{name: "Underscored", typeText: "Foo_Bar2", expected: []string{"Foo_Bar2"}},
		{name: "SingleLetter", typeText: "Map<K, V>", expected: []string{"Map", "K", "V"}},
		{name: "LowercaseOnly", typeText: "number | boolean", expected: nil},
		{name: "CamelValueIgnored", typeText: "keyof typeof foo", expected: nil},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := ScanTypeTokens(tc.typeText)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

// The scan is textual: the type argument of an opaque wrapper is still
// detected as a candidate even though the wrapper itself is not extractable.
// Known false-positive source, kept on purpose.
func TestScanTypeTokensWrapperFalsePositive(t *testing.T) {
	t.Parallel()

	got := ScanTypeTokens("SomeLibraryWrapper<Foo>")
	expected := []string{"SomeLibraryWrapper", "Foo"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}
