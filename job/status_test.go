package job

import "testing"

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{Pending, Processing, Completed, Failed, Dead, Unknown} {
		text, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got Status
		if err := got.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if got != s {
			t.Fatalf("round trip mismatch: want %v, got %v", s, got)
		}
	}
}

func TestParseStatusRejectsUnknownString(t *testing.T) {
	if _, err := ParseStatus("bogus"); err == nil {
		t.Fatal("expected error for unrecognized status string")
	}
}

func TestStatusStringIsLowercaseWireFormat(t *testing.T) {
	cases := map[Status]string{
		Pending:    "pending",
		Processing: "processing",
		Completed:  "completed",
		Failed:     "failed",
		Dead:       "dead",
	}
	for s, want := range cases {
		if got := s.String(); got != want {
			t.Fatalf("status %d: expected %q, got %q", s, want, got)
		}
	}
}
