package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/mathdrill/ent/schema"
)

const (
	TableOperations  = "operations"
	TableAnswers     = "answers"
	TableDecks       = "decks"
	TableReviewItems = "review_items"
)

// entities maps each table to the ent entity declaring it, parents first.
var entities = []struct {
	table  string
	entity ent.Interface
}{
	{TableDecks, entschema.Deck{}},
	{TableOperations, entschema.Operation{}},
	{TableAnswers, entschema.Answer{}},
	{TableReviewItems, entschema.ReviewItem{}},
}

var (
	// Tables holds all the tables in the schema, parents first.
	Tables = buildTables()

	DecksTable       = Tables[0]
	OperationsTable  = Tables[1]
	AnswersTable     = Tables[2]
	ReviewItemsTable = Tables[3]
)

// buildTables derives the migration tables from the ent entities: columns
// from mixin and entity fields, indexes from Indexes, and foreign keys from
// inverse edges bound to a field.
func buildTables() []*schema.Table {
	tables := make([]*schema.Table, len(entities))
	byType := make(map[string]*schema.Table, len(entities))

	for i, e := range entities {
		cols := columns(e.entity)
		t := &schema.Table{Name: e.table, Columns: cols, PrimaryKey: cols[:1]}

		typeName := reflect.TypeOf(e.entity).Name()
		for _, idx := range e.entity.Indexes() {
			d := idx.Descriptor()
			idxCols := make([]*schema.Column, len(d.Fields))
			for j, f := range d.Fields {
				idxCols[j] = mustColumn(t, f)
			}
			t.Indexes = append(t.Indexes, &schema.Index{
				Name:    strings.ToLower(typeName) + "_" + strings.Join(d.Fields, "_"),
				Unique:  d.Unique,
				Columns: idxCols,
			})
		}

		tables[i] = t
		byType[typeName] = t
	}

	for i, e := range entities {
		t := tables[i]
		for _, edge := range e.entity.Edges() {
			d := edge.Descriptor()
			if !d.Inverse || d.Field == "" {
				continue
			}
			ref, ok := byType[d.Type]
			if !ok {
				panic(fmt.Sprintf("store: edge %s.%s references unknown entity %s", t.Name, d.Name, d.Type))
			}
			col := mustColumn(t, d.Field)
			onDelete := schema.NoAction
			if col.Nullable {
				onDelete = schema.SetNull
			}
			t.ForeignKeys = append(t.ForeignKeys, &schema.ForeignKey{
				Symbol:     fmt.Sprintf("%s_%s_%s", t.Name, ref.Name, d.RefName),
				Columns:    []*schema.Column{col},
				RefTable:   ref,
				RefColumns: ref.PrimaryKey,
				OnDelete:   onDelete,
			})
		}
	}
	return tables
}

// columns returns an auto-increment id followed by the mixin fields and
// then the entity's own fields. Function defaults such as time.Now stay
// in Go and are not written to the table.
func columns(e ent.Interface) []*schema.Column {
	var fields []ent.Field
	for _, m := range e.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	fields = append(fields, e.Fields()...)

	cols := []*schema.Column{{Name: "id", Type: field.TypeInt, Increment: true}}
	for _, f := range fields {
		d := f.Descriptor()
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Nullable: d.Optional,
			Unique:   d.Unique,
		}
		for _, v := range d.Enums {
			c.Enums = append(c.Enums, v.V)
		}
		if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
			c.Default = d.Default
		}
		cols = append(cols, c)
	}
	return cols
}

func mustColumn(t *schema.Table, name string) *schema.Column {
	for _, c := range t.Columns {
		if c.Name == name {
			return c
		}
	}
	panic(fmt.Sprintf("store: table %s has no column %s", t.Name, name))
}
