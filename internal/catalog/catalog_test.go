package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func validTypes() []EnemyType {
	return []EnemyType{
		{Name: "scout", Shields: 1, Speed: 300, PowerUpChance: 0},
		{Name: "warden", Shields: 4, Speed: 150, PowerUpChance: 100},
	}
}

func TestNewEnemyTypeCatalog(t *testing.T) {
	tests := []struct {
		name    string
		types   []EnemyType
		code    string
		wantErr bool
	}{
		{name: "valid", types: validTypes()},
		{name: "empty", types: nil, code: CodeEmptyCatalog, wantErr: true},
		{name: "missing name", types: []EnemyType{{Shields: 1, Speed: 1}}, code: CodeInvalidName, wantErr: true},
		{name: "zero shields", types: []EnemyType{{Name: "a", Shields: 0, Speed: 1}}, code: CodeInvalidShields, wantErr: true},
		{name: "negative speed", types: []EnemyType{{Name: "a", Shields: 1, Speed: -5}}, code: CodeInvalidSpeed, wantErr: true},
		{name: "chance above 100", types: []EnemyType{{Name: "a", Shields: 1, Speed: 1, PowerUpChance: 101}}, code: CodeInvalidPowerUpChance, wantErr: true},
		{name: "negative chance", types: []EnemyType{{Name: "a", Shields: 1, Speed: 1, PowerUpChance: -1}}, code: CodeInvalidPowerUpChance, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cat, err := NewEnemyTypeCatalog(tc.types)
			if tc.wantErr {
				if !IsValidationError(err, tc.code) {
					t.Fatalf("NewEnemyTypeCatalog() error = %v, expected code %s", err, tc.code)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewEnemyTypeCatalog() unexpected error: %v", err)
			}
			if cat.Len() != len(tc.types) {
				t.Errorf("Len() = %d, expected %d", cat.Len(), len(tc.types))
			}
		})
	}
}

func TestEnemyTypeCatalogIsolation(t *testing.T) {
	types := validTypes()
	cat, err := NewEnemyTypeCatalog(types)
	if err != nil {
		t.Fatal(err)
	}

	types[0].Shields = 99
	if cat.At(0).Shields != 1 {
		t.Error("catalog should not alias the caller's slice")
	}

	all := cat.All()
	all[1].Name = "changed"
	if cat.At(1).Name != "warden" {
		t.Error("All() should return a copy")
	}
	if cat.At(1).WeaponName() != "wardenWeapon" {
		t.Errorf("WeaponName() = %q, expected wardenWeapon", cat.At(1).WeaponName())
	}
}

func TestNewWaveCatalog(t *testing.T) {
	waves := []Wave{
		{Name: "scripted", Enemies: []WaveEnemySpec{{Position: 0}, {Position: 8, XOffset: 2}}},
		{Name: "procedural"},
	}

	cat, err := NewWaveCatalog(waves, 9)
	if err != nil {
		t.Fatalf("NewWaveCatalog() unexpected error: %v", err)
	}
	if cat.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", cat.Len())
	}
	if cat.At(0).Procedural() || !cat.At(1).Procedural() {
		t.Error("Procedural() misclassified waves")
	}

	if _, err := NewWaveCatalog(nil, 9); !IsValidationError(err, CodeEmptyCatalog) {
		t.Errorf("empty waves: error = %v, expected %s", err, CodeEmptyCatalog)
	}
	if _, err := NewWaveCatalog(waves, 0); !IsValidationError(err, CodeEmptyLanes) {
		t.Errorf("no lanes: error = %v, expected %s", err, CodeEmptyLanes)
	}

	bad := []Wave{{Enemies: []WaveEnemySpec{{Position: 9}}}}
	if _, err := NewWaveCatalog(bad, 9); !IsValidationError(err, CodeLaneOutOfRange) {
		t.Errorf("lane 9 of 9: error = %v, expected %s", err, CodeLaneOutOfRange)
	}
	neg := []Wave{{Enemies: []WaveEnemySpec{{Position: -1}}}}
	if _, err := NewWaveCatalog(neg, 9); !IsValidationError(err, CodeLaneOutOfRange) {
		t.Errorf("lane -1: error = %v, expected %s", err, CodeLaneOutOfRange)
	}
}

func TestDefaultCatalogs(t *testing.T) {
	cats, err := Default(9)
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if cats.EnemyTypes.Len() == 0 || cats.Waves.Len() == 0 {
		t.Fatal("embedded catalogs should not be empty")
	}

	// Archetypes are ordered weakest first
	for i := 1; i < cats.EnemyTypes.Len(); i++ {
		if cats.EnemyTypes.At(i).Shields < cats.EnemyTypes.At(i-1).Shields {
			t.Errorf("archetype %d is weaker than %d", i, i-1)
		}
	}

	// The embedded table uses lanes up to 8, so a smaller table must fail
	if _, err := Default(5); !IsValidationError(err, CodeLaneOutOfRange) {
		t.Errorf("Default(5) error = %v, expected %s", err, CodeLaneOutOfRange)
	}
}

func TestLoadJSONTables(t *testing.T) {
	dir := t.TempDir()
	typesPath := filepath.Join(dir, "enemy-types.json")
	wavesPath := filepath.Join(dir, "waves.json")

	typesJSON := `[{"name":"enemy1","shields":1,"speed":150,"powerUpChance":20}]`
	wavesJSON := `[
		{"name":"first","enemies":[{"position":4,"xOffset":1,"moveStraight":true}]},
		{"name":"random","enemies":[]}
	]`
	if err := os.WriteFile(typesPath, []byte(typesJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(wavesPath, []byte(wavesJSON), 0o600); err != nil {
		t.Fatal(err)
	}

	cats, err := Load(typesPath, wavesPath, 9)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	et := cats.EnemyTypes.At(0)
	if et.Name != "enemy1" || et.PowerUpChance != 20 || et.Speed != 150 {
		t.Errorf("decoded archetype = %+v", et)
	}
	spec := cats.Waves.At(0).Enemies[0]
	if spec.Position != 4 || spec.XOffset != 1 || !spec.MoveStraight {
		t.Errorf("decoded spec = %+v", spec)
	}
	if !cats.Waves.At(1).Procedural() {
		t.Error("second wave should be procedural")
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "types.yaml")
	if err := os.WriteFile(path, []byte("- name: ghost\n  shields: 0\n  speed: 10\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path, "", 9)
	if !IsValidationError(err, CodeInvalidShields) {
		t.Fatalf("Load() error = %v, expected %s", err, CodeInvalidShields)
	}

	if _, err := LoadWaves(filepath.Join(dir, "waves.toml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := ParseWaves([]byte("x"), ".toml"); err == nil {
		t.Error("unsupported extension should fail")
	}
}
