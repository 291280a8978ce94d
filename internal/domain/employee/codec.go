package employee

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Record is the stored form of an employee. Kind is always written; records
// without it come from older files and are identified by their fields.
type Record struct {
	Kind                Kind     `json:"kind,omitempty"`
	ID                  int64    `json:"id,omitempty"`
	Name                string   `json:"name,omitempty"`
	BirthDate           string   `json:"birthDate,omitempty"`
	HireDate            string   `json:"hireDate,omitempty"`
	BaseSalary          *float64 `json:"baseSalary,omitempty"`
	ResponsibilityBonus *float64 `json:"responsibilityBonus,omitempty"`
	OvertimeHours       *float64 `json:"overtimeHours,omitempty"`
}

func Encode(e Employee) Record {
	details := e.Details()
	salary := details.BaseSalary
	record := Record{
		Kind:       e.Kind(),
		ID:         details.ID,
		Name:       details.Name,
		BirthDate:  details.BirthDate.Format(dateLayout),
		HireDate:   details.HireDate.Format(time.RFC3339Nano),
		BaseSalary: &salary,
	}
	switch v := e.(type) {
	case *Agent:
		bonus := v.ResponsibilityBonus
		record.ResponsibilityBonus = &bonus
	case *Trainer:
		hours := v.OvertimeHours
		record.OvertimeHours = &hours
	}
	return record
}

func EncodeAll(items []Employee) []Record {
	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, Encode(item))
	}
	return records
}

// Decode rebuilds an employee from a record. The stored id is kept as is,
// including zero for legacy records that never had one.
func Decode(r Record) (Employee, error) {
	kind := r.Kind
	if kind == "" {
		kind = sniffKind(r.Name != "", r.OvertimeHours != nil, r.ResponsibilityBonus != nil)
		if kind == "" {
			return nil, fmt.Errorf("%w: record is not an employee", ErrMalformedRecord)
		}
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown kind %q", ErrMalformedRecord, kind)
	}

	fields, err := recordFields(r)
	if err != nil {
		return nil, err
	}
	if r.ID < 0 {
		return nil, fmt.Errorf("%w: negative id %d", ErrMalformedRecord, r.ID)
	}
	ids := fixedID(r.ID)

	switch kind {
	case KindTrainer:
		if r.OvertimeHours == nil {
			return nil, fmt.Errorf("%w: trainer %d has no overtimeHours", ErrMalformedRecord, r.ID)
		}
		return NewTrainer(ids, fields, *r.OvertimeHours)
	default:
		if r.ResponsibilityBonus == nil {
			return nil, fmt.Errorf("%w: agent %d has no responsibilityBonus", ErrMalformedRecord, r.ID)
		}
		return NewAgent(ids, fields, *r.ResponsibilityBonus)
	}
}

// sniffKind checks the trainer field first, so a record carrying both
// variant fields is a trainer.
func sniffKind(hasName, hasOvertime, hasBonus bool) Kind {
	if hasName && hasOvertime {
		return KindTrainer
	}
	if hasName && hasBonus {
		return KindAgent
	}
	return ""
}

func recordFields(r Record) (Fields, error) {
	var missing []string
	if strings.TrimSpace(r.Name) == "" {
		missing = append(missing, "name")
	}
	if r.BirthDate == "" {
		missing = append(missing, "birthDate")
	}
	if r.HireDate == "" {
		missing = append(missing, "hireDate")
	}
	if r.BaseSalary == nil {
		missing = append(missing, "baseSalary")
	}
	if len(missing) > 0 {
		return Fields{}, fmt.Errorf("%w: record %d is missing %s", ErrMalformedRecord, r.ID, strings.Join(missing, ", "))
	}

	birthDate, err := ParseDate(r.BirthDate)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: birthDate: %v", ErrMalformedRecord, err)
	}
	hireDate, err := ParseDate(r.HireDate)
	if err != nil {
		return Fields{}, fmt.Errorf("%w: hireDate: %v", ErrMalformedRecord, err)
	}
	return Fields{
		Name:       r.Name,
		BirthDate:  birthDate,
		HireDate:   hireDate,
		BaseSalary: *r.BaseSalary,
	}, nil
}

type fixedID int64

func (f fixedID) Next() int64 { return int64(f) }

var legacyKeys = map[string]string{
	"nom":                 "name",
	"dateNaissance":       "birthDate",
	"dateEmbauche":        "hireDate",
	"salaireBase":         "baseSalary",
	"primeResponsabilite": "responsibilityBonus",
	"heureSup":            "overtimeHours",
	"mtle":                "id",
	"matricule":           "id",
}

// DecodeLegacy decodes an untagged attribute map. Maps that are not
// employees are returned unchanged.
func DecodeLegacy(m map[string]any) (any, error) {
	attrs := make(map[string]any, len(m))
	for key, value := range m {
		attrs[canonicalKey(key)] = value
	}
	_, hasName := attrs["name"]
	_, hasOvertime := attrs["overtimeHours"]
	_, hasBonus := attrs["responsibilityBonus"]
	kind := sniffKind(hasName, hasOvertime, hasBonus)
	if kind == "" {
		return m, nil
	}

	record, err := legacyRecord(attrs)
	if err != nil {
		return nil, err
	}
	record.Kind = kind
	return Decode(record)
}

func canonicalKey(key string) string {
	key = strings.TrimLeft(key, "_")
	if canonical, ok := legacyKeys[key]; ok {
		return canonical
	}
	return key
}

func legacyRecord(attrs map[string]any) (Record, error) {
	var record Record
	var err error
	if record.Name, err = stringAttr(attrs, "name"); err != nil {
		return Record{}, err
	}
	if record.BirthDate, err = stringAttr(attrs, "birthDate"); err != nil {
		return Record{}, err
	}
	if record.HireDate, err = stringAttr(attrs, "hireDate"); err != nil {
		return Record{}, err
	}
	if record.BaseSalary, err = numberAttr(attrs, "baseSalary"); err != nil {
		return Record{}, err
	}
	if record.ResponsibilityBonus, err = numberAttr(attrs, "responsibilityBonus"); err != nil {
		return Record{}, err
	}
	if record.OvertimeHours, err = numberAttr(attrs, "overtimeHours"); err != nil {
		return Record{}, err
	}
	id, err := numberAttr(attrs, "id")
	if err != nil {
		return Record{}, err
	}
	if id != nil {
		if *id != float64(int64(*id)) {
			return Record{}, fmt.Errorf("%w: id must be an integer, got %v", ErrMalformedRecord, *id)
		}
		record.ID = int64(*id)
	}
	return record, nil
}

func stringAttr(attrs map[string]any, key string) (string, error) {
	raw, ok := attrs[key]
	if !ok || raw == nil {
		return "", nil
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", ErrMalformedRecord, key)
	}
	return value, nil
}

func numberAttr(attrs map[string]any, key string) (*float64, error) {
	raw, ok := attrs[key]
	if !ok || raw == nil {
		return nil, nil
	}
	switch v := raw.(type) {
	case float64:
		return &v, nil
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrMalformedRecord, key, err)
		}
		return &parsed, nil
	}
	return nil, fmt.Errorf("%w: %s must be a number", ErrMalformedRecord, key)
}

// DecodeAll rebuilds a whole stored collection. Any bad record aborts the
// load. Legacy records without an id get one from seq once the highest
// stored id is known.
func DecodeAll(raws []json.RawMessage, seq *Sequence) ([]Employee, error) {
	items := make([]Employee, 0, len(raws))
	for i, raw := range raws {
		item, err := decodeRaw(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		items = append(items, item)
	}

	for _, item := range items {
		seq.Advance(item.Details().ID)
	}
	for _, item := range items {
		if item.Details().ID == 0 {
			item.base().ID = seq.Next()
		}
	}
	return items, nil
}

func decodeRaw(raw json.RawMessage) (Employee, error) {
	var attrs map[string]any
	if err := json.Unmarshal(raw, &attrs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if _, tagged := attrs["kind"]; tagged {
		var record Record
		decoder := json.NewDecoder(bytes.NewReader(raw))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&record); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
		}
		return Decode(record)
	}

	decoded, err := DecodeLegacy(attrs)
	if err != nil {
		return nil, err
	}
	item, ok := decoded.(Employee)
	if !ok {
		return nil, fmt.Errorf("%w: record is not an employee", ErrMalformedRecord)
	}
	return item, nil
}
