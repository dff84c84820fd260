// Package intake turns raw case records into validated cases.
package intake

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
	model "github.com/okian/docket/internal/domain/model"
)

// Record field names, as they appear in the dataset header and request bodies.
const (
	FieldCaseNo     = "CaseNo"
	FieldOffense    = "Offense"
	FieldVulnerable = "Vulnerable"
	FieldAge        = "AgeofCase"
	FieldBailMatter = "BailMatter"
	FieldUnderTrial = "UnderTrial"
)

// Fields lists the record fields in dataset column order.
var Fields = []string{FieldCaseNo, FieldOffense, FieldVulnerable, FieldAge, FieldBailMatter, FieldUnderTrial}

// Record is a raw case as supplied by a collaborator: field name to value.
type Record map[string]string

// UnmarshalJSON accepts string, number, boolean and null values so that
// {"AgeofCase": 4.5, "BailMatter": true} decodes the same as the string form.
func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode record: %w", err)
	}
	out := make(Record, len(raw))
	for k, v := range raw {
		switch tv := v.(type) {
		case nil:
			out[k] = ""
		case string:
			out[k] = tv
		case float64:
			out[k] = strconv.FormatFloat(tv, 'f', -1, 64)
		case bool:
			out[k] = formatFlag(tv)
		default:
			return fmt.Errorf("decode record: field %s has unsupported type %T", k, v)
		}
	}
	*r = out
	return nil
}

// Get returns the value of field or "" when it is absent.
func (r Record) Get(field string) string {
	return r[field]
}

// RecordOf renders the input fields of c back into a record, the shape a
// case source persists.
func RecordOf(c model.Case) Record {
	return Record{
		FieldCaseNo:     c.CaseNo,
		FieldOffense:    string(c.Offense),
		FieldVulnerable: string(c.Vulnerable),
		FieldAge:        strconv.FormatFloat(c.Age, 'f', -1, 64),
		FieldBailMatter: formatFlag(c.BailMatter),
		FieldUnderTrial: formatFlag(c.UnderTrial),
	}
}

// Values returns the record's values in Fields order.
func (r Record) Values() []string {
	out := make([]string, len(Fields))
	for i, f := range Fields {
		out[i] = r[f]
	}
	return out
}

func formatFlag(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
