package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	input := "gold_label,sentence1_ko,sentence2_ko,ai_answer,result\n" +
		"entailment,배가 아프다,\"쉼표, 포함\",entailment,correct\n" +
		"neutral,,두 번째,contradiction,wrong\n"

	ds, err := Parse(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(ds.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(ds.Rows))
	}
	if got := ds.Rows[0].Get(ColSentence2); got != "쉼표, 포함" {
		t.Errorf("quoted cell = %q", got)
	}
	if got := ds.Rows[1].Get(ColSentence1); got != "" {
		t.Errorf("blank cell = %q, want empty", got)
	}
	if missing := ds.Missing(); len(missing) != 0 {
		t.Errorf("Missing() = %v, want none", missing)
	}
}

func TestParseStripsBOM(t *testing.T) {
	input := "\ufeffgold_label,sentence1_ko,sentence2_ko,ai_answer,result\nx,a,b,c,d\n"

	ds, err := Parse(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if ds.Header[0] != ColGoldLabel {
		t.Errorf("first header = %q, want %q", ds.Header[0], ColGoldLabel)
	}
	if got := ds.Rows[0].Get(ColGoldLabel); got != "x" {
		t.Errorf("gold_label = %q, want x", got)
	}
}

func TestParseMissingColumns(t *testing.T) {
	input := "gold_label,sentence1_ko\nentailment,문장\n"

	ds, err := Parse(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := []string{ColSentence2, ColAIAnswer, ColResult}
	if got := ds.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
	if got := ds.Rows[0].Get(ColSentence2); got != "" {
		t.Errorf("absent column = %q, want empty", got)
	}
}

func TestParseRaggedRows(t *testing.T) {
	input := "gold_label,sentence1_ko,sentence2_ko,ai_answer,result\n" +
		"a,b\n" +
		"a,b,c,d,e,extra\n"

	ds, err := Parse(strings.NewReader(input), ',')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := ds.Rows[0].Get(ColResult); got != "" {
		t.Errorf("short row result = %q, want empty", got)
	}
	if got := ds.Rows[1].Get(ColResult); got != "e" {
		t.Errorf("long row result = %q, want e", got)
	}
}

func TestParseDelimiter(t *testing.T) {
	input := "gold_label\tsentence1_ko\tsentence2_ko\tai_answer\tresult\nx\ta, b\tc\td\te\n"

	ds, err := Parse(strings.NewReader(input), '\t')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := ds.Rows[0].Get(ColSentence1); got != "a, b" {
		t.Errorf("sentence1 = %q, want %q", got, "a, b")
	}
}

func TestParseEmpty(t *testing.T) {
	_, err := Parse(strings.NewReader(""), ',')
	if !errors.Is(err, ErrNoHeader) {
		t.Errorf("Parse(empty) error = %v, want ErrNoHeader", err)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	ds, err := Parse(strings.NewReader("gold_label,sentence1_ko,sentence2_ko,ai_answer,result\n"), ',')
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(ds.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(ds.Rows))
	}
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"), ',')
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Read() error = %v, want not-exist", err)
	}
}
