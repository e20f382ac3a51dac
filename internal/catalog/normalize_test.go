package catalog

import "testing"

func TestSKUFragment(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"M", "M"},
		{"Xanh Dương", "XANH-DUONG"},
		{"Đỏ đậm", "DO-DAM"},
		{"  500 ml / chai  ", "500-ML-CHAI"},
		{"--", ""},
		{"Café Sữa", "CAFE-SUA"},
	}
	for _, tc := range cases {
		if got := SKUFragment(tc.in); got != tc.want {
			t.Errorf("SKUFragment(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSlugify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Size", "size"},
		{"Màu Sắc", "mau-sac"},
		{"Bỉm & Tã", "bim-ta"},
		{"Đồ chơi", "do-choi"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
