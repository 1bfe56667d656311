package session

import "testing"

func TestExtractScriptWrappings(t *testing.T) {
	const want = ".items | map(.price)"
	cases := []string{
		want,
		"```jq\n.items | map(.price)\n```",
		"```\n.items | map(.price)\n```",
		"`.items | map(.price)`",
		"\"" + want + "\"",
		"Here is the script you asked for:\n.items | map(.price)",
		"  .items | map(.price)  \n",
	}
	for _, raw := range cases {
		if got := ExtractScript(raw); got != want {
			t.Errorf("ExtractScript(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestExtractScriptIdempotent(t *testing.T) {
	for _, raw := range []string{
		"```jq\nmap(select(.a > 1))\n```",
		"`.[0]`",
		"Certainly! The script:\n.foo.bar",
	} {
		once := ExtractScript(raw)
		if twice := ExtractScript(once); twice != once {
			t.Errorf("not idempotent for %q: %q then %q", raw, once, twice)
		}
	}
}

func TestExtractScriptMultilineBody(t *testing.T) {
	raw := "```jq\n.items\n| map(.price)\n| add\n```"
	want := ".items\n| map(.price)\n| add"
	if got := ExtractScript(raw); got != want {
		t.Fatalf("ExtractScript = %q, want %q", got, want)
	}
}
