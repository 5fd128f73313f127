// Package dataset reads the Korean NLI rows to be translated, flattens the
// two sentence columns of a batch into one ordered list, and writes the
// dialect rows back out in input order.
package dataset

import "errors"

// Input columns.
const (
	ColGoldLabel = "gold_label"
	ColSentence1 = "sentence1_ko"
	ColSentence2 = "sentence2_ko"
	ColAIAnswer  = "ai_answer"
	ColResult    = "result"
)

// Output columns for the translated sentences.
const (
	ColSentence1Out = "sentence1_jeju"
	ColSentence2Out = "sentence2_jeju"
)

// RequiredColumns are the input columns the pipeline reads.
var RequiredColumns = []string{ColGoldLabel, ColSentence1, ColSentence2, ColAIAnswer, ColResult}

// OutputHeader is the fixed header of the output file.
var OutputHeader = []string{ColGoldLabel, ColSentence1Out, ColSentence2Out, ColAIAnswer, ColResult}

// ErrNoHeader is returned when the input file has no header row.
var ErrNoHeader = errors.New("input has no header row")

// InputRow maps column name to cell value. Rows are not modified after Read.
type InputRow map[string]string

// Get returns the cell for col, or "" when the column is absent.
func (r InputRow) Get(col string) string {
	return r[col]
}

// OutputRow is one line of the output file.
type OutputRow struct {
	GoldLabel string
	Sentence1 string
	Sentence2 string
	AIAnswer  string
	Result    string
}

// Record returns the cells in OutputHeader order.
func (o OutputRow) Record() []string {
	return []string{o.GoldLabel, o.Sentence1, o.Sentence2, o.AIAnswer, o.Result}
}

// Field identifies which source sentence a flattened text came from.
type Field int

const (
	FieldSentence1 Field = iota
	FieldSentence2
)

func (f Field) String() string {
	switch f {
	case FieldSentence1:
		return "sentence1"
	case FieldSentence2:
		return "sentence2"
	default:
		return "unknown"
	}
}

// Position tags a flattened text with its row (within the batch) and field.
type Position struct {
	Row   int
	Field Field
}

// Flatten emits sentence1 then sentence2 for every row of batch, in row
// order. Blank cells keep their slot with an empty or whitespace text.
func Flatten(batch []InputRow) ([]string, []Position) {
	texts := make([]string, 0, 2*len(batch))
	positions := make([]Position, 0, 2*len(batch))
	for i, row := range batch {
		texts = append(texts, row.Get(ColSentence1))
		positions = append(positions, Position{Row: i, Field: FieldSentence1})

		texts = append(texts, row.Get(ColSentence2))
		positions = append(positions, Position{Row: i, Field: FieldSentence2})
	}
	return texts, positions
}

// Assemble builds one OutputRow per batch row. translated[i] is written to
// the field positions[i] points at; pass-through columns are copied.
func Assemble(batch []InputRow, positions []Position, translated []string) []OutputRow {
	out := make([]OutputRow, len(batch))
	for i, row := range batch {
		out[i] = OutputRow{
			GoldLabel: row.Get(ColGoldLabel),
			AIAnswer:  row.Get(ColAIAnswer),
			Result:    row.Get(ColResult),
		}
	}
	for i, pos := range positions {
		if i >= len(translated) || pos.Row < 0 || pos.Row >= len(out) {
			continue
		}
		switch pos.Field {
		case FieldSentence1:
			out[pos.Row].Sentence1 = translated[i]
		case FieldSentence2:
			out[pos.Row].Sentence2 = translated[i]
		}
	}
	return out
}
