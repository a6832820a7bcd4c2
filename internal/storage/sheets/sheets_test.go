package sheets

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/adityanb2025/Disaster-relief-app/internal/domain"
)

func TestStringCells(t *testing.T) {
	t.Parallel()

	width := len(domain.RowHeader)

	cases := []struct {
		name    string
		cells   []interface{}
		want    []string
		wantErr bool
	}{
		{
			name:  "full row passes through",
			cells: []interface{}{"id", "ts", "n", "p", "a", "need", "u", "x", "1", "2", "pending", "Bob"},
			want:  []string{"id", "ts", "n", "p", "a", "need", "u", "x", "1", "2", "pending", "Bob"},
		},
		{
			// The API drops trailing empty cells; a pending row with no
			// responder comes back one cell short.
			name:  "short row padded to full width",
			cells: []interface{}{"id", "ts", "n", "p", "a", "need", "u", "x", "1", "2", "pending"},
			want:  []string{"id", "ts", "n", "p", "a", "need", "u", "x", "1", "2", "pending", ""},
		},
		{
			name:  "empty row padded",
			cells: nil,
			want:  make([]string, width),
		},
		{
			name:  "non-string cells stringified",
			cells: []interface{}{"id", 42, true},
			want:  append([]string{"id", "42", "true"}, make([]string, width-3)...),
		},
		{
			name:    "over-wide row rejected",
			cells:   make([]interface{}, width+1),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := stringCells(tc.cells)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("stringCells: %v", err)
			}
			if len(got) != width {
				t.Fatalf("len = %d, want %d", len(got), width)
			}
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestColumnLetters(t *testing.T) {
	t.Parallel()

	cases := []struct {
		col  int
		want string
	}{
		{0, "A"},
		{1, "B"},
		{9, "J"},
		{10, "K"},
		{11, "L"},
	}
	for _, tc := range cases {
		if got := columnLetter(tc.col); got != tc.want {
			t.Fatalf("columnLetter(%d) = %q, want %q", tc.col, got, tc.want)
		}
	}

	if got := lastColumn(); got != "L" {
		t.Fatalf("lastColumn() = %q, want L", got)
	}
}

func TestUpdateRangeAddressesStatusAndResponder(t *testing.T) {
	t.Parallel()

	statusCol, responderCol := domain.StatusCell()
	if responderCol != statusCol+1 {
		t.Fatalf("responder column must follow status for the single-range update, got %d/%d", statusCol, responderCol)
	}

	rng := fmt.Sprintf("requests!%s%d:%s%d", columnLetter(statusCol), 7, lastColumn(), 7)
	if rng != "requests!K7:L7" {
		t.Fatalf("range = %q, want requests!K7:L7", rng)
	}
}
