package pronounce

import "testing"

func TestParseVariant(t *testing.T) {
	cases := []struct {
		in   string
		want Variant
		ok   bool
	}{
		{"", US, true},
		{"us", US, true},
		{"UK", UK, true},
		{"au", US, false},
	}
	for _, tc := range cases {
		got, ok := ParseVariant(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ParseVariant(%q) = %v, %v", tc.in, got, ok)
		}
	}
}

func TestFallbackCodesOrder(t *testing.T) {
	us := FallbackCodes(US)
	if len(us) != 2 || us[0] != "2" || us[1] != "1" {
		t.Fatalf("unexpected US fallback order %v", us)
	}
	uk := FallbackCodes(UK)
	if len(uk) != 2 || uk[0] != "1" || uk[1] != "2" {
		t.Fatalf("unexpected UK fallback order %v", uk)
	}
}

func TestAudioURLEscapesWord(t *testing.T) {
	got := AudioURL("ice cream", "2")
	want := "https://dict.youdao.com/dictvoice?audio=ice+cream&type=2"
	if got != want {
		t.Fatalf("AudioURL = %q, want %q", got, want)
	}
}
