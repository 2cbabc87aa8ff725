package querybuilder

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// modelFields maps a struct type to the indexes and names of its `db` columns.
type modelFields struct {
	index   []int
	columns []string
}

var fieldCache sync.Map // reflect.Type -> *modelFields

// InsertModel builds an INSERT from the exported `db`-tagged fields of model.
// Fields tagged `db:"-"` or without a tag are skipped.
func InsertModel(table string, model any, suffix string) (string, []any, error) {
	value, fields, err := inspect(model)
	if err != nil {
		return "", nil, err
	}

	values := make([]any, len(fields.index))
	for i, idx := range fields.index {
		values[i] = value.Field(idx).Interface()
	}
	return InsertInto(table).
		Columns(fields.columns...).
		Values(values...).
		Suffix(suffix).
		ToSQL()
}

// Columns lists the `db` column names of a struct model in field order, or
// nil when model is not a tagged struct.
func Columns(model any) []string {
	_, fields, err := inspect(model)
	if err != nil {
		return nil
	}
	return append([]string(nil), fields.columns...)
}

func inspect(model any) (reflect.Value, *modelFields, error) {
	value := reflect.ValueOf(model)
	for value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return reflect.Value{}, nil, errors.New("model cannot be nil")
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return reflect.Value{}, nil, fmt.Errorf("model must be struct, got %s", value.Kind())
	}

	typ := value.Type()
	if cached, ok := fieldCache.Load(typ); ok {
		return value, cached.(*modelFields), nil
	}

	fields := &modelFields{}
	for i := range typ.NumField() {
		field := typ.Field(i)
		if !field.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(field.Tag.Get("db"), ",")
		if name = strings.TrimSpace(name); name == "" || name == "-" {
			continue
		}
		fields.index = append(fields.index, i)
		fields.columns = append(fields.columns, name)
	}
	if len(fields.columns) == 0 {
		return reflect.Value{}, nil, fmt.Errorf("model %s has no db columns", typ)
	}

	actual, _ := fieldCache.LoadOrStore(typ, fields)
	return value, actual.(*modelFields), nil
}
