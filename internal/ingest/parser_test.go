package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *Table) []Row {
	var out []Row
	for r := range t.Rows() {
		out = append(out, r)
	}
	return out
}

func TestDetectDelimiter(t *testing.T) {
	cases := []struct {
		line string
		want rune
	}{
		{"a,b,c", ','},
		{"a\tb\tc", '\t'},
		{"a;b;c", ';'},
		{"a|b|c", '|'},
		{"a;b,c;d", ';'},
		{"single", ','},          // nadie gana: primer candidato
		{"a,b\tc", ','},          // empate 2-2: coma primero
		{`"x;y",b,c`, ','},       // el ; entre comillas no cuenta
		{"a\tb;c\td;e", '\t'},
	}
	for _, c := range cases {
		assert.Equalf(t, c.want, DetectDelimiter(c.line), "line %q", c.line)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	text := "Name;Date;Spend\nA;2024-01-01;1,5\nB;2024-01-02;2\n"
	first := Parse(text)
	for i := 0; i < 5; i++ {
		again := Parse(text)
		require.Equal(t, first.Delimiter(), again.Delimiter())
		require.Equal(t, collect(first), collect(again))
	}
	// the sequence can be walked more than once
	assert.Equal(t, collect(first), collect(first))
	assert.Equal(t, 2, first.Len())
}

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Campaign Name":     "campaign_name",
		"  SESSIONS ":       "sessions",
		`"Bounce Rate (%)"`: "bounce_rate____",
		"utm-source":        "utm_source",
		"'Owner'":           "owner",
		"p_value":           "p_value",
	}
	for in, want := range cases {
		assert.Equalf(t, want, NormalizeHeader(in), "input %q", in)
	}
	assert.Equal(t, NormalizeHeader("Campaign-Name"), NormalizeHeader("campaign name"))
}

func TestNormalizeHeaderIdempotent(t *testing.T) {
	for _, in := range []string{"Campaign Name", `"Avg. Time (s)"`, "Größe", "  x\ty ", "", "a__b"} {
		once := NormalizeHeader(in)
		assert.Equalf(t, once, NormalizeHeader(once), "input %q", in)
	}
}

func TestSplitLineQuotes(t *testing.T) {
	got := SplitLine(`"Acme, Inc",2024-01-01,"say ""hi""",  x `, ',')
	assert.Equal(t, []string{"Acme, Inc", "2024-01-01", `say "hi"`, "x"}, got)

	got = SplitLine(`a|"b|c"|d`, '|')
	assert.Equal(t, []string{"a", "b|c", "d"}, got)

	assert.Equal(t, []string{"", "", ""}, SplitLine(",,", ','))
}

func TestParseRowShape(t *testing.T) {
	tbl := Parse("A,B,C\n1\n1,2,3,4\n")
	rows := collect(tbl)
	require.Len(t, rows, 2)

	assert.Equal(t, []string{"a", "b", "c"}, rows[0].Headers())
	assert.Equal(t, "1", rows[0].Get("a"))
	assert.Equal(t, "", rows[0].Get("b"))
	assert.Equal(t, "", rows[0].Get("c"))

	// extra trailing field dropped
	require.Len(t, rows[1], 3)
	assert.Equal(t, "3", rows[1].Get("c"))
}

func TestParseSkipsBlankLines(t *testing.T) {
	tbl := Parse("Name,Date\n\nAcme,2024-01-01\n   \n,\n\n")
	rows := collect(tbl)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme", rows[0].Get("name"))
}

func TestParseLineEndings(t *testing.T) {
	for _, text := range []string{"a,b\r\n1,2\r\n", "a,b\r1,2\r", "a,b\n1,2"} {
		rows := collect(Parse(text))
		require.Lenf(t, rows, 1, "text %q", text)
		assert.Equal(t, "2", rows[0].Get("b"))
	}
}

func TestParseDegenerate(t *testing.T) {
	for _, text := range []string{"", "\n\n", "Name,Date\n", "Name,Date\n\n  \n"} {
		tbl := Parse(text)
		assert.Truef(t, tbl.Empty(), "text %q", text)
		assert.Emptyf(t, collect(tbl), "text %q", text)
	}
}

func TestRowGetDuplicateHeaders(t *testing.T) {
	rows := collect(Parse("Sessions,sessions\n,20\n10,20\n"))
	require.Len(t, rows, 2)
	assert.Equal(t, "20", rows[0].Get("sessions"))
	assert.Equal(t, "10", rows[1].Get("sessions"))
}

func TestFromRecords(t *testing.T) {
	tbl := FromRecords([][]string{
		{"", ""},
		{"Campaign Name", "Sessions; all devices; GA4"},
		{"Promo\nQ2", "10"},
		{"  ", ""},
		{"Short"},
	})
	assert.Equal(t, ',', tbl.Delimiter())
	assert.Equal(t, []string{"campaign_name", "sessions__all_devices__ga4"}, tbl.Headers())

	rows := collect(tbl)
	require.Len(t, rows, 2)
	assert.Equal(t, "Promo Q2", rows[0].Get("campaign_name"))
	assert.Equal(t, "10", rows[0].Get("sessions__all_devices__ga4"))
	assert.Equal(t, "Short", rows[1].Get("campaign_name"))
	assert.Empty(t, rows[1].Get("sessions__all_devices__ga4"))
}

func TestFromRecordsDegenerate(t *testing.T) {
	for _, recs := range [][][]string{nil, {{"Name", "Date"}}, {{"Name"}, {" "}, {"\n"}}} {
		tbl := FromRecords(recs)
		assert.Truef(t, tbl.Empty(), "records %q", recs)
		assert.Empty(t, collect(tbl))
	}
}
