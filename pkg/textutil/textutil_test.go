package textutil

import (
	"encoding/base64"
	"reflect"
	"testing"
)

func TestDecodeTransport(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain base64url",
			input: base64.URLEncoding.EncodeToString([]byte("Hello World")),
			want:  "Hello World",
		},
		{
			name:  "unpadded base64url",
			input: base64.RawURLEncoding.EncodeToString([]byte("Bewerbung eingegangen")),
			want:  "Bewerbung eingegangen",
		},
		{
			name:  "quoted-printable inside base64",
			input: base64.URLEncoding.EncodeToString([]byte("Thank you=3D for applying=\r\n to Acme=0A")),
			want:  "Thank you= for applying to Acme\n",
		},
		{
			name:  "malformed input yields empty string",
			input: "%%%not-base64%%%",
			want:  "",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeTransport(tt.input); got != tt.want {
				t.Errorf("DecodeTransport() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTMLToText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "paragraphs become separate lines",
			input: "<p>Hello</p><p>World</p>",
			want:  "Hello\nWorld",
		},
		{
			name:  "br becomes newline",
			input: "Senior Backend Engineer<br>Acme Corp · Berlin",
			want:  "Senior Backend Engineer\nAcme Corp · Berlin",
		},
		{
			name:  "script and style bodies removed",
			input: "<style>.a{color:red}</style><p>Visible</p><script>alert(1)</script>",
			want:  "Visible",
		},
		{
			name:  "entities decoded",
			input: "<p>Tom&nbsp;&amp;&nbsp;Jerry &lt;3&gt;</p>",
			want:  "Tom & Jerry <3>",
		},
		{
			name:  "blank line runs collapse",
			input: "<div>a</div>\n\n\n<div>b</div>",
			want:  "a\nb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HTMLToText(tt.input); got != tt.want {
				t.Errorf("HTMLToText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "collapses whitespace", input: "  Product   Manager \t ", want: "Product Manager"},
		{name: "strips bullet glyphs", input: "• Backend Engineer ▸", want: "Backend Engineer"},
		{name: "preserves middle dot separator", input: "Acme Corp · Berlin, Germany", want: "Acme Corp · Berlin, Germany"},
		{name: "strips pipes", input: "Role | Company", want: "Role Company"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanLine(tt.input); got != tt.want {
				t.Errorf("CleanLine(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("Senior Backend Engineer\r\n\r\nAcme Corp · Berlin, Germany\nApplied on Jan 5, 2024\n\n")
	want := []string{"Senior Backend Engineer", "Acme Corp · Berlin, Germany", "Applied on Jan 5, 2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitLines() = %v, want %v", got, want)
	}
}
