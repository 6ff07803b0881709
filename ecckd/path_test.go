package ecckd

import (
	"reflect"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		path string
		want []uint32
		err  error
	}{
		{"m", []uint32{}, nil},
		{"m/0", []uint32{0}, nil},
		{"m/0'/1", []uint32{HardenedBit, 1}, nil},
		{"44h/60H/0'/0/7", []uint32{HardenedBit + 44, HardenedBit + 60, HardenedBit, 0, 7}, nil},
		{"m/2147483647'", []uint32{0xffffffff}, nil},
		{"m/2147483648", nil, ErrInvalidPath},
		{"m//1", nil, ErrInvalidPath},
		{"m/-1", nil, ErrInvalidPath},
		{"m/+1", nil, ErrInvalidPath},
		{"m/x", nil, ErrInvalidPath},
		{"m/1/", nil, ErrInvalidPath},
	}

	for _, test := range tests {
		got, err := ParsePath(test.path)
		if err != test.err {
			t.Errorf("%s: unexpected error: got %v, want %v", test.path, err, test.err)
			continue
		}
		if err == nil && !reflect.DeepEqual(got, test.want) {
			t.Errorf("%s: mismatched indices: got %v, want %v", test.path, got, test.want)
		}
	}
}
