package subareastore_test

import (
	"testing"

	subareastore "github.com/dalemusser/vocaguia/internal/app/store/subareas"
	"github.com/dalemusser/vocaguia/internal/domain/models"
	"github.com/dalemusser/vocaguia/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestStore_CreateGetList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subareastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.Subarea{
		Nombre:       "Neurociencia",
		Introduccion: "intro",
		Descripcion:  "<p>ok</p><script>alert(1)</script>",
		Carrera:      "Psicología",
		Lecciones:    []models.Leccion{{Titulo: "Neuronas"}},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.Descripcion != "<p>ok</p>" {
		t.Errorf("Descripcion = %q, want sanitized", created.Descripcion)
	}

	got, err := store.GetByNombre(ctx, "neurociencia")
	if err != nil {
		t.Fatalf("GetByNombre failed: %v", err)
	}
	if len(got.Lecciones) != 1 || got.Lecciones[0].Titulo != "Neuronas" {
		t.Errorf("Lecciones = %+v", got.Lecciones)
	}

	list, err := store.ListByCarrera(ctx, "PSICOLOGÍA")
	if err != nil {
		t.Fatalf("ListByCarrera failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("len(list) = %d, want 1", len(list))
	}

	if _, err := store.GetByNombre(ctx, "nada"); err != mongo.ErrNoDocuments {
		t.Errorf("err = %v, want ErrNoDocuments", err)
	}
}

func TestStore_NamesByCarrera(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := subareastore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	for _, sa := range []models.Subarea{
		{Nombre: "Derecho Penal", Carrera: "Derecho"},
		{Nombre: "Derecho Civil", Carrera: "derecho"},
		{Nombre: "Anatomía", Carrera: "Medicina"},
	} {
		if _, err := store.Create(ctx, sa); err != nil {
			t.Fatalf("Create %s failed: %v", sa.Nombre, err)
		}
	}

	names, err := store.NamesByCarrera(ctx, "DERECHO")
	if err != nil {
		t.Fatalf("NamesByCarrera failed: %v", err)
	}
	if len(names) != 2 || names[0] != "Derecho Penal" || names[1] != "Derecho Civil" {
		t.Errorf("names = %v", names)
	}

	none, err := store.NamesByCarrera(ctx, "Arte")
	if err != nil {
		t.Fatalf("NamesByCarrera failed: %v", err)
	}
	if none == nil || len(none) != 0 {
		t.Errorf("unknown carrera = %#v, want empty non-nil slice", none)
	}
}
