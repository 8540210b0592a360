package seed

import (
	"testing"

	"github.com/joyascharlys/backoffice/db"
)

func TestRunEsIdempotente(t *testing.T) {
	database, err := db.OpenMemoria()
	if err != nil {
		t.Fatal(err)
	}
	defer database.Close()
	if err := db.Migrate(database); err != nil {
		t.Fatal(err)
	}

	primera, err := Run(database)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if primera.Inserts == 0 {
		t.Error("la primera corrida no insertó nada")
	}

	segunda, err := Run(database)
	if err != nil {
		t.Fatalf("Run (segunda): %v", err)
	}
	if segunda.Inserts != 0 {
		t.Errorf("la segunda corrida insertó %d filas, quería 0", segunda.Inserts)
	}

	var materiales int
	if err := database.QueryRow(`SELECT COUNT(*) FROM materiales`).Scan(&materiales); err != nil {
		t.Fatal(err)
	}
	if materiales != len(materialesBase) {
		t.Errorf("materiales = %d, quería %d", materiales, len(materialesBase))
	}
	var joyas int
	if err := database.QueryRow(`SELECT COUNT(*) FROM joyas`).Scan(&joyas); err != nil {
		t.Fatal(err)
	}
	if joyas != len(joyasBase) {
		t.Errorf("joyas = %d, quería %d", joyas, len(joyasBase))
	}
}
