package seq

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		wantKind Kind
		wantSeq  string
	}{
		{
			"uppercase DNA",
			"ATCGATCG",
			DNA,
			"ATCGATCG",
		},
		{
			"lowercase DNA with whitespace",
			"  atcg\natcg\r\n",
			DNA,
			"ATCGATCG",
		},
		{
			"mixed case DNA with inner spaces",
			"AtC gAt",
			DNA,
			"ATCGAT",
		},
		{
			"amino acid letters only",
			"MKV",
			AminoAcid,
			"",
		},
		{
			"lowercase amino acid",
			"mkvlw",
			AminoAcid,
			"",
		},
		{
			"RNA with uracil",
			"AUGC",
			RNA,
			"",
		},
		{
			"uracil only",
			"uuu",
			RNA,
			"",
		},
		{
			"protein letters mixed with an RNA letter",
			"MKA",
			RNA,
			"",
		},
		{
			"digits and punctuation",
			"1234-!",
			Invalid,
			"",
		},
		{
			"letters outside every alphabet",
			"XBZ",
			Invalid,
			"",
		},
		{
			"empty",
			" \n ",
			Invalid,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.raw)
			if got.Kind != tt.wantKind {
				t.Errorf("Validate(%q) kind = %v, want %v", tt.raw, got.Kind, tt.wantKind)
			}
			if got.Seq != tt.wantSeq {
				t.Errorf("Validate(%q) seq = %q, want %q", tt.raw, got.Seq, tt.wantSeq)
			}
			if got.OK() != (tt.wantKind == DNA) {
				t.Errorf("Validate(%q).OK() = %v", tt.raw, got.OK())
			}
		})
	}
}

func TestKind_Message(t *testing.T) {
	messages := map[string]bool{}
	for _, k := range []Kind{DNA, AminoAcid, RNA, Invalid} {
		m := k.Message()
		if m == "" {
			t.Errorf("%v has no message", k)
		}
		if messages[m] {
			t.Errorf("%v shares its message with another kind", k)
		}
		messages[m] = true
	}
}
