package dataset

import (
	"reflect"
	"testing"
)

func sampleBatch() []InputRow {
	return []InputRow{
		{ColGoldLabel: "entailment", ColSentence1: "배가 아프다", ColSentence2: "아프다", ColAIAnswer: "entailment", ColResult: "correct"},
		{ColGoldLabel: "neutral", ColSentence1: "", ColSentence2: "밥을 먹었다", ColAIAnswer: "neutral", ColResult: "correct"},
	}
}

func TestFlatten(t *testing.T) {
	texts, positions := Flatten(sampleBatch())

	wantTexts := []string{"배가 아프다", "아프다", "", "밥을 먹었다"}
	if !reflect.DeepEqual(texts, wantTexts) {
		t.Errorf("texts = %q, want %q", texts, wantTexts)
	}
	wantPos := []Position{
		{Row: 0, Field: FieldSentence1},
		{Row: 0, Field: FieldSentence2},
		{Row: 1, Field: FieldSentence1},
		{Row: 1, Field: FieldSentence2},
	}
	if !reflect.DeepEqual(positions, wantPos) {
		t.Errorf("positions = %v, want %v", positions, wantPos)
	}
}

func TestFlattenEmpty(t *testing.T) {
	texts, positions := Flatten(nil)
	if len(texts) != 0 || len(positions) != 0 {
		t.Errorf("Flatten(nil) = %v, %v", texts, positions)
	}
}

func TestAssemble(t *testing.T) {
	batch := sampleBatch()
	_, positions := Flatten(batch)
	translated := []string{"배가 아픈다", "아픈다", "", "밥 먹었수다"}

	got := Assemble(batch, positions, translated)
	want := []OutputRow{
		{GoldLabel: "entailment", Sentence1: "배가 아픈다", Sentence2: "아픈다", AIAnswer: "entailment", Result: "correct"},
		{GoldLabel: "neutral", Sentence1: "", Sentence2: "밥 먹었수다", AIAnswer: "neutral", Result: "correct"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Assemble() = %+v, want %+v", got, want)
	}
}

func TestAssembleDoesNotModifyInput(t *testing.T) {
	batch := sampleBatch()
	_, positions := Flatten(batch)
	Assemble(batch, positions, []string{"x", "y", "z", "w"})

	if batch[0][ColSentence1] != "배가 아프다" {
		t.Errorf("input row modified: %q", batch[0][ColSentence1])
	}
}

func TestOutputRowRecord(t *testing.T) {
	row := OutputRow{GoldLabel: "g", Sentence1: "s1", Sentence2: "s2", AIAnswer: "a", Result: "r"}
	want := []string{"g", "s1", "s2", "a", "r"}
	if got := row.Record(); !reflect.DeepEqual(got, want) {
		t.Errorf("Record() = %v, want %v", got, want)
	}
	if len(OutputHeader) != len(want) {
		t.Errorf("header has %d columns, record has %d", len(OutputHeader), len(want))
	}
}
