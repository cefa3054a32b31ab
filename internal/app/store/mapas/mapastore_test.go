package mapastore_test

import (
	"reflect"
	"testing"

	mapastore "github.com/dalemusser/vocaguia/internal/app/store/mapas"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_NamesAndDescription(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := mapastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, n := range []string{"Cálculo I", "Álgebra Lineal"} {
		if _, err := store.Create(ctx, models.MapaCurricular{Nombre: n, Descripcion: "curso " + n, Carrera: "Física"}); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	names, err := store.NamesByCarrera(ctx, "fisica")
	if err != nil {
		t.Fatalf("NamesByCarrera failed: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Cálculo I", "Álgebra Lineal"}) {
		t.Errorf("names = %v", names)
	}

	m, err := store.GetByNombre(ctx, "cálculo i")
	if err != nil {
		t.Fatalf("GetByNombre failed: %v", err)
	}
	if m.Descripcion != "curso Cálculo I" || m.Carrera != "Física" {
		t.Errorf("got %+v", m)
	}

	if _, err := store.GetByNombre(ctx, "Química"); err != mongo.ErrNoDocuments {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
}
