package querybuilder

import (
	"reflect"
	"testing"
)

func TestSelectBuilder(t *testing.T) {
	query, args, err := Select("id", "name").
		From("seasons").
		Where(Eq("team_id", "t1"), IsNull("deleted_at")).
		OrderBy("start_date DESC").
		Limit(10).
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id, name FROM seasons WHERE team_id = $1 AND deleted_at IS NULL ORDER BY start_date DESC LIMIT 10"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 1 || args[0] != "t1" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_ForUpdateAndIn(t *testing.T) {
	query, args, err := Select("id").
		From("players").
		Where(In("id", []string{"p1", "p2"}), Expr("team_id = ?", "t1")).
		ForUpdate().
		ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}

	wantQuery := "SELECT id FROM players WHERE id IN ($1, $2) AND team_id = $3 FOR UPDATE"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"p1", "p2", "t1"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestSelectBuilder_EmptyInMatchesNothing(t *testing.T) {
	query, args, err := Select("id").From("players").Where(In[string]("id", nil)).ToSQL()
	if err != nil {
		t.Fatalf("build select query: %v", err)
	}
	if query != "SELECT id FROM players WHERE 1=0" || len(args) != 0 {
		t.Fatalf("unexpected query %q args %v", query, args)
	}
}

func TestInsertBuilder(t *testing.T) {
	query, args, err := InsertInto("matches").
		Columns("id", "opponent").
		Values("m1", "Rovers").
		Suffix("RETURNING created_at").
		ToSQL()
	if err != nil {
		t.Fatalf("build insert query: %v", err)
	}

	wantQuery := "INSERT INTO matches (id, opponent) VALUES ($1, $2) RETURNING created_at"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if len(args) != 2 || args[0] != "m1" || args[1] != "Rovers" {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestUpdateBuilder(t *testing.T) {
	query, args, err := Update("seasons").
		Set("name", "Spring").
		SetExpr("updated_at", "NOW()").
		SetExpr("is_active", "(id = ?)", "s1").
		Where(Eq("team_id", "t1")).
		ToSQL()
	if err != nil {
		t.Fatalf("build update query: %v", err)
	}

	wantQuery := "UPDATE seasons SET name = $1, updated_at = NOW(), is_active = (id = $2) WHERE team_id = $3"
	if query != wantQuery {
		t.Fatalf("unexpected query:\nwant: %s\ngot:  %s", wantQuery, query)
	}
	if !reflect.DeepEqual(args, []any{"Spring", "s1", "t1"}) {
		t.Fatalf("unexpected args: %+v", args)
	}
}

func TestDeleteBuilder(t *testing.T) {
	query, args, err := DeleteFrom("lineup_assignments").
		Where(Eq("lineup_id", "l1"), Eq("slot_code", "ST")).
		ToSQL()
	if err != nil {
		t.Fatalf("build delete query: %v", err)
	}
	if query != "DELETE FROM lineup_assignments WHERE lineup_id = $1 AND slot_code = $2" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}

	if _, _, err := DeleteFrom("lineups").ToSQL(); err == nil {
		t.Fatalf("expected unconditional delete to be rejected")
	}
}

func TestInsertModel(t *testing.T) {
	type row struct {
		ID       string `db:"id"`
		Opponent string `db:"opponent"`
		Ignored  string `db:"-"`
		internal string
	}

	query, args, err := InsertModel("matches", row{ID: "m1", Opponent: "Rovers", internal: "x"}, "")
	if err != nil {
		t.Fatalf("insert model: %v", err)
	}
	if query != "INSERT INTO matches (id, opponent) VALUES ($1, $2)" {
		t.Fatalf("unexpected query: %s", query)
	}
	if len(args) != 2 {
		t.Fatalf("unexpected args: %+v", args)
	}
	if cols := Columns(row{}); !reflect.DeepEqual(cols, []string{"id", "opponent"}) {
		t.Fatalf("unexpected columns: %v", cols)
	}
}

func TestInsertModel_RejectsNonStructs(t *testing.T) {
	type row struct {
		ID string `db:"id"`
	}
	var nilRow *row

	if _, _, err := InsertModel("matches", nilRow, ""); err == nil {
		t.Fatalf("expected nil pointer model to be rejected")
	}
	if _, _, err := InsertModel("matches", "m1", ""); err == nil {
		t.Fatalf("expected string model to be rejected")
	}
	if _, _, err := InsertModel("matches", struct{ Name string }{Name: "x"}, ""); err == nil {
		t.Fatalf("expected untagged model to be rejected")
	}
	if cols := Columns(&row{}); !reflect.DeepEqual(cols, []string{"id"}) {
		t.Fatalf("expected pointer models to resolve, got %v", cols)
	}
}
